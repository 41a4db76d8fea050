package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tsouxd/reservation-lalilalou/internal/model"
)

type bookRequest struct {
	FullName      string      `json:"fullname" binding:"required"`
	Email         string      `json:"email" binding:"required,email"`
	Phone         string      `json:"phone" binding:"required"`
	Category      string      `json:"category" binding:"required"`
	Service       string      `json:"service" binding:"required"`
	Employee      string      `json:"employee" binding:"required"`
	Date          string      `json:"date" binding:"required"`
	Time          string      `json:"time" binding:"required"`
	Price         json.Number `json:"price" binding:"required"`
	PaymentMethod string      `json:"payment_method" binding:"required"`
}

// Book handles POST /api/book: it appends one full-width reservation row and
// then attempts the two intake emails. Email delivery is best effort; once
// the row is in the ledger the booking is considered recorded.
func (h *Handler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	rec := model.Reservation{
		CreatedAt:        time.Now().Format(model.CreatedAtLayout),
		ClientName:       req.FullName,
		ClientEmail:      req.Email,
		ClientPhone:      req.Phone,
		Category:         req.Category,
		Service:          req.Service,
		Employee:         req.Employee,
		AppointmentDate:  req.Date,
		AppointmentTime:  req.Time,
		TotalPrice:       fmt.Sprintf("%s %s", req.Price.String(), h.cfg.Booking.Currency),
		PaymentMethod:    req.PaymentMethod,
		Status:           model.StatusPending,
		ReminderSent:     model.MarkNo,
		ReferenceCode:    model.NewReferenceCode(),
		ConfirmationSent: model.MarkNo,
	}

	if err := h.ledger.Append(c.Request.Context(), rec.Row()); err != nil {
		log.Printf("book: failed to append reservation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.sender.Send(c.Request.Context(), rec.ClientEmail,
		"Reservation request received - pending validation", h.clientIntakeBody(rec)); err != nil {
		log.Printf("book: client intake mail for %s failed: %v", rec.ReferenceCode, err)
	}
	if err := h.sender.Send(c.Request.Context(), h.cfg.Mail.AdminAddress,
		fmt.Sprintf("New reservation: %s (%s)", rec.ClientName, rec.ReferenceCode), h.adminIntakeBody(rec)); err != nil {
		log.Printf("book: admin intake mail for %s failed: %v", rec.ReferenceCode, err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "ref": rec.ReferenceCode})
}

func (h *Handler) paymentText(method string) string {
	if method == model.PaymentMobileMoney {
		return fmt.Sprintf("Mobile money transfer to %s", h.cfg.Booking.MobileMoneyNumber)
	}
	return "Payment on site"
}

func (h *Handler) clientIntakeBody(rec model.Reservation) string {
	mobileNote := ""
	if rec.PaymentMethod == model.PaymentMobileMoney {
		mobileNote = fmt.Sprintf(
			"\nIf you chose mobile money, please send the deposit to %s to speed up validation.\n",
			h.cfg.Booking.MobileMoneyNumber)
	}
	return fmt.Sprintf(`Hello %s,

We received your reservation request.

IMPORTANT: your reservation is currently PENDING VALIDATION.

Your request:
- Reference: %s
- Service: %s
- Date and time: %s at %s
- Payment method: %s
- Amount: %s
%s
See you soon,
The Lalilalou team
`,
		rec.ClientName,
		rec.ReferenceCode,
		rec.Service,
		rec.AppointmentDate, rec.AppointmentTime,
		h.paymentText(rec.PaymentMethod),
		rec.TotalPrice,
		mobileNote,
	)
}

func (h *Handler) adminIntakeBody(rec model.Reservation) string {
	return fmt.Sprintf(`New reservation request to process:

CLIENT:
- Name: %s
- Email: %s
- Phone: %s

RESERVATION:
- Reference: %s
- Service: %s (%s)
- Date: %s
- Time: %s
- Employee: %s
- Price: %s

PAYMENT:
- Method: %s

Action required: check availability and reply to the client to confirm or decline.
`,
		rec.ClientName, rec.ClientEmail, rec.ClientPhone,
		rec.ReferenceCode,
		rec.Service, rec.Category,
		rec.AppointmentDate, rec.AppointmentTime,
		rec.Employee,
		rec.TotalPrice,
		rec.PaymentMethod,
	)
}
