package jobs

import (
	"fmt"

	"github.com/Tsouxd/reservation-lalilalou/config"
	"github.com/Tsouxd/reservation-lalilalou/internal/model"
	"github.com/Tsouxd/reservation-lalilalou/internal/parse"
)

const (
	confirmationSubject = "Your reservation is confirmed - payment details"
	reminderSubject     = "Reminder: your appointment is tomorrow"
)

// ConfirmationBody composes the payment-confirmation email for a newly
// confirmed reservation.
func ConfirmationBody(rec model.Reservation, booking *config.BookingConfig) string {
	balance := parse.Balance(rec.TotalPrice, booking.DepositAmount)
	return fmt.Sprintf(`Hello %s,

Good news: your reservation %s has been confirmed.

Details:
- Service: %s
- Date and time: %s at %s
- Total: %s
- Deposit: %d %s
- Outstanding balance: %s

The balance is payable on the day of your appointment.

See you soon,
The Lalilalou team
`,
		rec.ClientName,
		rec.ReferenceCode,
		rec.Service,
		rec.AppointmentDate, rec.AppointmentTime,
		rec.TotalPrice,
		booking.DepositAmount, booking.Currency,
		balance,
	)
}

// ReminderBody composes the day-before reminder email.
func ReminderBody(rec model.Reservation, booking *config.BookingConfig) string {
	balance := parse.Balance(rec.TotalPrice, booking.DepositAmount)
	return fmt.Sprintf(`Hello %s,

A quick reminder about your appointment tomorrow.

- Reference: %s
- Service: %s
- Date and time: %s at %s
- Outstanding balance: %s

If you cannot make it, please let us know as early as possible.

See you tomorrow,
The Lalilalou team
`,
		rec.ClientName,
		rec.ReferenceCode,
		rec.Service,
		rec.AppointmentDate, rec.AppointmentTime,
		balance,
	)
}
