package mailer

import "context"

// Sender delivers one plain-text email to one recipient. Delivery is best
// effort: callers treat an error as "not delivered" and rely on the next job
// tick or request for any retry.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
