package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Mail    MailConfig    `yaml:"mail"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Booking BookingConfig `yaml:"booking"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// LedgerConfig addresses the reservation spreadsheet.
type LedgerConfig struct {
	SpreadsheetID    string `yaml:"spreadsheet_id"`
	Worksheet        string `yaml:"worksheet"`
	ArchiveWorksheet string `yaml:"archive_worksheet"`
	CredentialsFile  string `yaml:"credentials_file"`
}

// MailConfig holds the Gmail OAuth credentials and addressing.
type MailConfig struct {
	FromName     string `yaml:"from_name"`
	FromAddress  string `yaml:"from_address"`
	AdminAddress string `yaml:"admin_address"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
}

// JobsConfig drives the two background jobs.
type JobsConfig struct {
	ReconcileIntervalMinutes int           `yaml:"reconcile_interval_minutes"`
	ReconcileInterval        time.Duration `yaml:"-"` // Ignored by YAML parser
	ArchiveCron              string        `yaml:"archive_cron"`
	RetentionDays            int           `yaml:"retention_days"`
}

// BookingConfig holds intake and payment settings.
type BookingConfig struct {
	DepositAmount     int    `yaml:"deposit_amount"`
	Currency          string `yaml:"currency"`
	MobileMoneyNumber string `yaml:"mobile_money_number"`
	WebhookToken      string `yaml:"webhook_token"`
}

// Load reads the configuration from the given path, applies defaults, and
// lets environment variables override the secrets so credential material can
// stay out of the file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Jobs.ReconcileIntervalMinutes <= 0 {
		cfg.Jobs.ReconcileIntervalMinutes = 15
	}
	cfg.Jobs.ReconcileInterval = time.Duration(cfg.Jobs.ReconcileIntervalMinutes) * time.Minute
	if cfg.Jobs.ArchiveCron == "" {
		cfg.Jobs.ArchiveCron = "0 3 * * *"
	}
	if cfg.Jobs.RetentionDays <= 0 {
		cfg.Jobs.RetentionDays = 30
	}

	if cfg.Booking.DepositAmount <= 0 {
		cfg.Booking.DepositAmount = 10000
	}
	if cfg.Booking.Currency == "" {
		cfg.Booking.Currency = "ariary"
	}
}

func (cfg *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LEDGER_CREDENTIALS_FILE"); v != "" {
		cfg.Ledger.CredentialsFile = v
	}
	if v := os.Getenv("MAIL_CLIENT_ID"); v != "" {
		cfg.Mail.ClientID = v
	}
	if v := os.Getenv("MAIL_CLIENT_SECRET"); v != "" {
		cfg.Mail.ClientSecret = v
	}
	if v := os.Getenv("MAIL_REFRESH_TOKEN"); v != "" {
		cfg.Mail.RefreshToken = v
	}
	if v := os.Getenv("WEBHOOK_TOKEN"); v != "" {
		cfg.Booking.WebhookToken = v
	}
}
