package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsouxd/reservation-lalilalou/config"
	"github.com/Tsouxd/reservation-lalilalou/internal/ledger"
	"github.com/Tsouxd/reservation-lalilalou/internal/model"
)

// mockSender records every delivery attempt and can be told to fail.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type mockSender struct {
	sent    []sentMail
	failAll bool
}

func (m *mockSender) Send(ctx context.Context, to, subject, body string) error {
	if m.failAll {
		return errors.New("mail relay unreachable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) // tomorrow is 2025-06-16

func testBooking() *config.BookingConfig {
	return &config.BookingConfig{
		DepositAmount: 10000,
		Currency:      "ariary",
	}
}

func newTestReconciler(l ledger.Ledger, s *mockSender) *Reconciler {
	r := NewReconciler(l, s, testBooking())
	r.now = func() time.Time { return testNow }
	return r
}

func headerRow() []string {
	return []string{
		"created_at", "client_name", "client_email", "client_phone",
		"category", "service", "employee", "appointment_date",
		"appointment_time", "total_price", "payment_method", "status",
		"reminder_sent", "reference_code", "confirmation_sent",
	}
}

func reservationRow(email, status, date, reminderSent, confirmationSent string) []string {
	return model.Reservation{
		CreatedAt:        "2025-06-01 09:00:00",
		ClientName:       "Jane Doe",
		ClientEmail:      email,
		ClientPhone:      "+261340000000",
		Category:         "Hair",
		Service:          "Balayage",
		Employee:         "Miora",
		AppointmentDate:  date,
		AppointmentTime:  "14:00",
		TotalPrice:       "50000 ariary",
		PaymentMethod:    model.PaymentOnSite,
		Status:           status,
		ReminderSent:     reminderSent,
		ReferenceCode:    "LL-TEST1",
		ConfirmationSent: confirmationSent,
	}.Row()
}

func TestReconcilerSendsConfirmation(t *testing.T) {
	l := ledger.NewMemoryLedger(
		headerRow(),
		reservationRow("jane@example.com", model.StatusConfirmed, "2025-07-01", model.MarkNo, model.MarkNo),
	)
	sender := &mockSender{}

	newTestReconciler(l, sender).RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].To)
	assert.Equal(t, confirmationSubject, sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "LL-TEST1")
	assert.Contains(t, sender.sent[0].Body, "40000 ariary")

	assert.Equal(t, model.MarkYes, l.Snapshot()[1][model.ColConfirmationSent])
	assert.Equal(t, model.MarkNo, l.Snapshot()[1][model.ColReminderSent])
}

func TestReconcilerConfirmationIdempotent(t *testing.T) {
	l := ledger.NewMemoryLedger(
		headerRow(),
		reservationRow("jane@example.com", model.StatusConfirmed, "2025-07-01", model.MarkNo, model.MarkYes),
	)
	sender := &mockSender{}

	newTestReconciler(l, sender).RunOnce(context.Background())

	assert.Empty(t, sender.sent)
}

func TestReconcilerIgnoresUnconfirmed(t *testing.T) {
	l := ledger.NewMemoryLedger(
		headerRow(),
		reservationRow("a@example.com", model.StatusPending, "2025-06-16", model.MarkNo, model.MarkNo),
		reservationRow("b@example.com", model.StatusCancelled, "2025-06-16", model.MarkNo, model.MarkNo),
	)
	sender := &mockSender{}

	newTestReconciler(l, sender).RunOnce(context.Background())

	assert.Empty(t, sender.sent)
}

func TestReconcilerReminderWindow(t *testing.T) {
	testCases := []struct {
		name     string
		date     string
		wantSent bool
	}{
		{"Appointment today", "2025-06-15", false},
		{"Appointment tomorrow", "2025-06-16", true},
		{"Appointment day after tomorrow", "2025-06-17", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := ledger.NewMemoryLedger(
				headerRow(),
				reservationRow("jane@example.com", model.StatusConfirmed, tc.date, model.MarkNo, model.MarkYes),
			)
			sender := &mockSender{}

			newTestReconciler(l, sender).RunOnce(context.Background())

			if tc.wantSent {
				require.Len(t, sender.sent, 1)
				assert.Equal(t, reminderSubject, sender.sent[0].Subject)
				assert.Equal(t, model.MarkYes, l.Snapshot()[1][model.ColReminderSent])
			} else {
				assert.Empty(t, sender.sent)
				assert.Equal(t, model.MarkNo, l.Snapshot()[1][model.ColReminderSent])
			}
		})
	}
}

func TestReconcilerBothRulesSameTick(t *testing.T) {
	l := ledger.NewMemoryLedger(
		headerRow(),
		reservationRow("jane@example.com", model.StatusConfirmed, "2025-06-16", model.MarkNo, model.MarkNo),
	)
	sender := &mockSender{}

	newTestReconciler(l, sender).RunOnce(context.Background())

	require.Len(t, sender.sent, 2)
	assert.Equal(t, confirmationSubject, sender.sent[0].Subject)
	assert.Equal(t, reminderSubject, sender.sent[1].Subject)
	assert.Equal(t, model.MarkYes, l.Snapshot()[1][model.ColConfirmationSent])
	assert.Equal(t, model.MarkYes, l.Snapshot()[1][model.ColReminderSent])
}

func TestReconcilerSendFailureLeavesMarker(t *testing.T) {
	l := ledger.NewMemoryLedger(
		headerRow(),
		reservationRow("jane@example.com", model.StatusConfirmed, "2025-07-01", model.MarkNo, model.MarkNo),
	)
	sender := &mockSender{failAll: true}

	newTestReconciler(l, sender).RunOnce(context.Background())

	// Not delivered, so the marker stays NO and the next tick retries.
	assert.Equal(t, model.MarkNo, l.Snapshot()[1][model.ColConfirmationSent])

	sender.failAll = false
	newTestReconciler(l, sender).RunOnce(context.Background())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, model.MarkYes, l.Snapshot()[1][model.ColConfirmationSent])
}

func TestReconcilerSkipsMalformedRows(t *testing.T) {
	l := ledger.NewMemoryLedger(
		headerRow(),
		[]string{"2025-06-01 09:00:00", "Old Format", "old@example.com"},
		reservationRow("jane@example.com", model.StatusConfirmed, "2025-07-01", model.MarkNo, model.MarkNo),
	)
	sender := &mockSender{}

	newTestReconciler(l, sender).RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].To)
	assert.Equal(t, model.MarkYes, l.Snapshot()[2][model.ColConfirmationSent])
}

func TestReconcilerSkipsTickOnReadError(t *testing.T) {
	l := ledger.NewMemoryLedger(headerRow())
	l.FailNext = errors.New("api quota exceeded")
	sender := &mockSender{}

	newTestReconciler(l, sender).RunOnce(context.Background())

	assert.Empty(t, sender.sent)
}

// failingWrites wraps a memory ledger so every cell update fails.
type failingWrites struct {
	*ledger.MemoryLedger
}

func (f *failingWrites) UpdateCell(ctx context.Context, row, col int, value string) error {
	return errors.New("write rejected")
}

func TestReconcilerAbortsTickOnWriteError(t *testing.T) {
	mem := ledger.NewMemoryLedger(
		headerRow(),
		reservationRow("first@example.com", model.StatusConfirmed, "2025-07-01", model.MarkNo, model.MarkNo),
		reservationRow("second@example.com", model.StatusConfirmed, "2025-07-01", model.MarkNo, model.MarkNo),
	)
	sender := &mockSender{}

	newTestReconciler(&failingWrites{mem}, sender).RunOnce(context.Background())

	// The first marker write fails and the remainder of the tick is
	// abandoned: the second record is not reached.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "first@example.com", sender.sent[0].To)
}
