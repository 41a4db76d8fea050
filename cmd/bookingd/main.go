package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Tsouxd/reservation-lalilalou/config"
	"github.com/Tsouxd/reservation-lalilalou/internal/api"
	"github.com/Tsouxd/reservation-lalilalou/internal/jobs"
	"github.com/Tsouxd/reservation-lalilalou/internal/ledger"
	"github.com/Tsouxd/reservation-lalilalou/internal/mailer"
)

func main() {
	logger := log.New(os.Stdout, "bookingd ", log.LstdFlags)

	if err := godotenv.Load(); err != nil {
		logger.Println("no .env file found")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheet, err := ledger.NewSheetsLedger(ctx, &cfg.Ledger)
	if err != nil {
		logger.Fatalf("failed to initialize ledger: %v", err)
	}
	logger.Printf("ledger ready: worksheet %q, archive %q", cfg.Ledger.Worksheet, cfg.Ledger.ArchiveWorksheet)

	sender, err := mailer.NewGmailSender(ctx, &cfg.Mail)
	if err != nil {
		logger.Fatalf("failed to initialize mailer: %v", err)
	}

	reconciler := jobs.NewReconciler(sheet, sender, &cfg.Booking)
	archiver := jobs.NewArchiver(sheet, cfg.Jobs.RetentionDays)

	scheduler, err := jobs.NewScheduler(&cfg.Jobs, reconciler, archiver)
	if err != nil {
		logger.Fatalf("failed to build scheduler: %v", err)
	}
	scheduler.Start()

	router := api.NewRouter(cfg, sheet, sender)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("shutdown signal received, stopping services...")

	// Let any in-flight job tick finish before the process exits.
	<-scheduler.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("server gracefully stopped")
}
