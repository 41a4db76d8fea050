package model

import (
	"errors"
	"fmt"
)

// Column indices of the reservation worksheet, 0-based. The sheet layout is
// positional: staff edit the sheet directly, so the order must never change.
const (
	ColCreatedAt = iota
	ColClientName
	ColClientEmail
	ColClientPhone
	ColCategory
	ColService
	ColEmployee
	ColAppointmentDate
	ColAppointmentTime
	ColTotalPrice
	ColPaymentMethod
	ColStatus
	ColReminderSent
	ColReferenceCode
	ColConfirmationSent

	// NumColumns is the full width of a reservation row.
	NumColumns = ColConfirmationSent + 1
)

// Status values. Staff may type anything into the status cell; only
// StatusConfirmed has meaning for the background jobs.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Marker values for the reminder_sent / confirmation_sent columns.
const (
	MarkYes = "YES"
	MarkNo  = "NO"
)

// Payment methods accepted at intake.
const (
	PaymentOnSite      = "on-site"
	PaymentMobileMoney = "mobile-money"
)

// Timestamp layouts used in the sheet.
const (
	CreatedAtLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// ErrMalformedRow is returned when a row is too short to decode. Such rows are
// skipped by the jobs, never treated as fatal.
var ErrMalformedRow = errors.New("malformed reservation row")

// Reservation is one decoded row of the ledger.
type Reservation struct {
	CreatedAt        string
	ClientName       string
	ClientEmail      string
	ClientPhone      string
	Category         string
	Service          string
	Employee         string
	AppointmentDate  string
	AppointmentTime  string
	TotalPrice       string
	PaymentMethod    string
	Status           string
	ReminderSent     string
	ReferenceCode    string
	ConfirmationSent string
}

// DecodeRow converts a raw sheet row into a Reservation. A row narrower than
// the full schema cannot be evaluated by the reconciler and yields
// ErrMalformedRow.
func DecodeRow(row []string) (Reservation, error) {
	if len(row) < NumColumns {
		return Reservation{}, fmt.Errorf("%w: got %d of %d columns", ErrMalformedRow, len(row), NumColumns)
	}
	return Reservation{
		CreatedAt:        row[ColCreatedAt],
		ClientName:       row[ColClientName],
		ClientEmail:      row[ColClientEmail],
		ClientPhone:      row[ColClientPhone],
		Category:         row[ColCategory],
		Service:          row[ColService],
		Employee:         row[ColEmployee],
		AppointmentDate:  row[ColAppointmentDate],
		AppointmentTime:  row[ColAppointmentTime],
		TotalPrice:       row[ColTotalPrice],
		PaymentMethod:    row[ColPaymentMethod],
		Status:           row[ColStatus],
		ReminderSent:     row[ColReminderSent],
		ReferenceCode:    row[ColReferenceCode],
		ConfirmationSent: row[ColConfirmationSent],
	}, nil
}

// Row encodes the reservation back into the positional sheet layout.
func (r Reservation) Row() []string {
	row := make([]string, NumColumns)
	row[ColCreatedAt] = r.CreatedAt
	row[ColClientName] = r.ClientName
	row[ColClientEmail] = r.ClientEmail
	row[ColClientPhone] = r.ClientPhone
	row[ColCategory] = r.Category
	row[ColService] = r.Service
	row[ColEmployee] = r.Employee
	row[ColAppointmentDate] = r.AppointmentDate
	row[ColAppointmentTime] = r.AppointmentTime
	row[ColTotalPrice] = r.TotalPrice
	row[ColPaymentMethod] = r.PaymentMethod
	row[ColStatus] = r.Status
	row[ColReminderSent] = r.ReminderSent
	row[ColReferenceCode] = r.ReferenceCode
	row[ColConfirmationSent] = r.ConfirmationSent
	return row
}
