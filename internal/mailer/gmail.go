package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/Tsouxd/reservation-lalilalou/config"
)

// GmailSender implements Sender against the Gmail API, authenticated with an
// OAuth client id/secret and a long-lived refresh token.
type GmailSender struct {
	svc      *gmail.Service
	fromName string
	fromAddr string
}

// NewGmailSender builds the Gmail client. The refresh token is exchanged for
// access tokens automatically by the token source.
func NewGmailSender(ctx context.Context, cfg *config.MailConfig) (*GmailSender, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	return &GmailSender{
		svc:      svc,
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddress,
	}, nil
}

// Send builds an RFC 822 plain-text message and submits it through
// users.messages.send on the authenticated account.
func (s *GmailSender) Send(ctx context.Context, to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", s.fromName), s.fromAddr)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	raw := base64.URLEncoding.EncodeToString([]byte(msg.String()))
	_, err := s.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
