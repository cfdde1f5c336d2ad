package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"financas/internal/amqp"
	"financas/internal/config"
	sheetsexport "financas/internal/export/sheets"
	"financas/internal/ledger"
	"financas/internal/ledger/memory"
	"financas/internal/log"
	"financas/internal/storage"
	"financas/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting financas-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}

	// Sheets export is optional; the archive in the store is the source of
	// truth either way.
	var exporter worker.Exporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := sheetsexport.NewClient(context.Background(), cfg)
		if err != nil {
			logger.Error("Failed to initialize sheets exporter", log.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Sheets exporter initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		logger.Info("Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	reportWorker := worker.NewReportWorker(store, exporter, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Refresh the current month on startup to recover from missed events.
	now := time.Now()
	if err := reportWorker.RefreshPeriod(ctx, now.Year(), int(now.Month())); err != nil {
		logger.Error("Startup refresh failed", log.FieldError, err)
	}

	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			handler := func(msg *amqp.LedgerEventMessage) error {
				return reportWorker.HandleLedgerEvent(ctx, msg)
			}
			if err := amqpClient.ConsumeLedgerEvents(ctx, handler); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Error("Event consumption failed", log.FieldError, err)
				}
				cancel()
			}
		}()
	} else {
		logger.Info("AMQP disabled - running on periodic refresh only")
	}

	go reportWorker.RunPeriodic(ctx, cfg.RefreshInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker stopped")
}

// openStore builds the configured ledger store. The worker writes only the
// report archive, so it never needs the event-publishing service layer.
func openStore(cfg *config.Config) (ledger.Store, func(), error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		if cfg.MemorySeedFile != "" {
			store, err := memory.NewFromFile(cfg.MemorySeedFile)
			if err != nil {
				return nil, nil, err
			}
			return store, nil, nil
		}
		return memory.New(), nil, nil
	}
}
