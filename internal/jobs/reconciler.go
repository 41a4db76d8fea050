package jobs

import (
	"context"
	"log"
	"time"

	"github.com/Tsouxd/reservation-lalilalou/config"
	"github.com/Tsouxd/reservation-lalilalou/internal/ledger"
	"github.com/Tsouxd/reservation-lalilalou/internal/mailer"
	"github.com/Tsouxd/reservation-lalilalou/internal/model"
	"github.com/Tsouxd/reservation-lalilalou/internal/parse"
)

// Reconciler brings the ledger's notification markers in line with its status
// column. Each tick reads a fresh full snapshot and walks it in row order:
// newly confirmed reservations get a payment-confirmation email, reservations
// happening tomorrow get a reminder. A marker cell is written only after the
// corresponding email was delivered, so a failed send is retried naturally on
// the next tick.
type Reconciler struct {
	ledger  ledger.Ledger
	sender  mailer.Sender
	booking *config.BookingConfig

	// now is swappable so tests can pin the clock.
	now func() time.Time
}

// NewReconciler wires a reconciler over the given ledger and sender.
func NewReconciler(l ledger.Ledger, s mailer.Sender, booking *config.BookingConfig) *Reconciler {
	return &Reconciler{
		ledger:  l,
		sender:  s,
		booking: booking,
		now:     time.Now,
	}
}

// RunOnce performs a single reconciliation tick. Errors end the tick early
// and are logged, never raised: markers already written persist and the next
// tick re-evaluates whatever is still unmarked.
func (r *Reconciler) RunOnce(ctx context.Context) {
	rows, err := r.ledger.Rows(ctx)
	if err != nil {
		log.Printf("reconcile: failed to read ledger, skipping tick: %v", err)
		return
	}

	tomorrow := parse.Tomorrow(r.now())

	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		rec, err := model.DecodeRow(row)
		if err != nil {
			log.Printf("reconcile: skipping row %d: %v", i+1, err)
			continue
		}
		sheetRow := i + 1

		if rec.Status == model.StatusConfirmed && rec.ConfirmationSent != model.MarkYes {
			if !r.sendAndMark(ctx, rec, sheetRow, model.ColConfirmationSent+1,
				confirmationSubject, ConfirmationBody(rec, r.booking)) {
				return
			}
		}

		if rec.Status == model.StatusConfirmed &&
			rec.AppointmentDate == tomorrow &&
			rec.ReminderSent != model.MarkYes {
			if !r.sendAndMark(ctx, rec, sheetRow, model.ColReminderSent+1,
				reminderSubject, ReminderBody(rec, r.booking)) {
				return
			}
		}
	}
}

// sendAndMark attempts one delivery and, on success, flips the marker cell to
// YES. A send failure is tolerated (the record stays eligible for the next
// tick); a ledger write failure aborts the tick and returns false.
func (r *Reconciler) sendAndMark(ctx context.Context, rec model.Reservation, sheetRow, col int, subject, body string) bool {
	if err := r.sender.Send(ctx, rec.ClientEmail, subject, body); err != nil {
		log.Printf("reconcile: send to %s for %s failed, will retry next tick: %v",
			rec.ClientEmail, rec.ReferenceCode, err)
		return true
	}
	if err := r.ledger.UpdateCell(ctx, sheetRow, col, model.MarkYes); err != nil {
		log.Printf("reconcile: failed to mark row %d, aborting tick: %v", sheetRow, err)
		return false
	}
	log.Printf("reconcile: sent %q to %s (%s)", subject, rec.ClientEmail, rec.ReferenceCode)
	return true
}
