package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tsouxd/reservation-lalilalou/internal/model"
)

// GetSlots handles GET /api/get-slots?date=YYYY-MM-DD and returns the times
// already booked on that date. A ledger failure degrades to an empty list
// with a 500 so the booking page can still render.
func (h *Handler) GetSlots(c *gin.Context) {
	targetDate := c.Query("date")

	rows, err := h.ledger.Rows(c.Request.Context())
	if err != nil {
		log.Printf("get-slots: failed to read ledger: %v", err)
		c.JSON(http.StatusInternalServerError, []string{})
		return
	}

	booked := []string{}
	for _, row := range rows {
		if len(row) <= model.ColAppointmentTime {
			continue
		}
		if row[model.ColAppointmentDate] == targetDate {
			booked = append(booked, row[model.ColAppointmentTime])
		}
	}

	c.JSON(http.StatusOK, booked)
}
