package api

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tsouxd/reservation-lalilalou/internal/model"
)

type confirmRequest struct {
	// Row is the 1-based sheet row of the reservation; row 1 is the header.
	Row int `json:"row" binding:"required"`
}

// ConfirmWebhook handles POST /api/webhook/confirm?token=<secret>: it flips
// the status cell of one row to CONFIRMED so the next reconciliation tick
// picks it up. Guarded by a static shared secret.
func (h *Handler) ConfirmWebhook(c *gin.Context) {
	token := h.cfg.Booking.WebhookToken
	supplied := c.Query("token")
	if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "invalid token"})
		return
	}

	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if req.Row < 2 {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "row must be 2 or greater"})
		return
	}

	if err := h.ledger.UpdateCell(c.Request.Context(), req.Row, model.ColStatus+1, model.StatusConfirmed); err != nil {
		log.Printf("webhook: failed to confirm row %d: %v", req.Row, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
