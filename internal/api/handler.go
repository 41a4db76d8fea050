package api

import (
	"github.com/Tsouxd/reservation-lalilalou/config"
	"github.com/Tsouxd/reservation-lalilalou/internal/ledger"
	"github.com/Tsouxd/reservation-lalilalou/internal/mailer"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg    *config.Config
	ledger ledger.Ledger
	sender mailer.Sender
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, l ledger.Ledger, s mailer.Sender) *Handler {
	return &Handler{
		cfg:    cfg,
		ledger: l,
		sender: s,
	}
}
