package api

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/Tsouxd/reservation-lalilalou/config"
	"github.com/Tsouxd/reservation-lalilalou/internal/ledger"
	"github.com/Tsouxd/reservation-lalilalou/internal/mailer"
	"github.com/Tsouxd/reservation-lalilalou/internal/mw"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter creates and configures the Gin router.
func NewRouter(cfg *config.Config, l ledger.Ledger, s mailer.Sender) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	handler := NewHandler(cfg, l, s)

	r.GET("/", handler.Index)

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	slotCache := cache.New(ttl, 2*ttl)

	api := r.Group("/api")
	api.Use(mw.RateLimit(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	{
		// The slot lookup reads the whole sheet; cache it briefly.
		api.GET("/get-slots", mw.Cache(slotCache, ttl), handler.GetSlots)
		api.POST("/book", handler.Book)
		api.POST("/webhook/confirm", handler.ConfirmWebhook)
	}

	return r
}

// Index renders the booking page.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(200, "index.html", gin.H{
		"Currency": h.cfg.Booking.Currency,
	})
}
