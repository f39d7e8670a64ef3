package main

import (
	"context"
	"os"
	"time"

	"servicios/internal/amqp"
	"servicios/internal/cli"
	applog "servicios/internal/log"
	"servicios/internal/sheets"
	gsheet "servicios/internal/sheets/google"
	memledger "servicios/internal/sheets/memory"
	"servicios/internal/storage"
	"servicios/internal/worker"
)

func main() {
	logger := cli.SetupLogger(applog.ComponentWorker)
	cli.LoadEnvFile(logger)
	logger.Info("Starting servicios-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if err := cfg.ValidateExport(); err != nil {
		logger.Error("Export configuration invalid", applog.FieldError, err)
		os.Exit(1)
	}

	// The worker reads the rows named by each event, so it needs the shared
	// SQLite file regardless of DATA_BACKEND.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var ledger sheets.LedgerWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(context.Background(), gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			ServicesSheet:   cfg.GoogleServicesSheet,
			ExpensesSheet:   cfg.GoogleExpensesSheet,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		ledger = client
		logger.Info("Google Sheets ledger initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		ledger = memledger.New()
		logger.Info("No GOOGLE_SPREADSHEET_ID provided, exporting to an in-memory ledger")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exporter := worker.NewExportWorker(repo, ledger, amqpClient)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := exporter.Stop(ctx); err != nil {
			logger.Error("Export worker stop failed", applog.FieldError, err)
		}
	})

	if err := exporter.Start(ctx); err != nil {
		logger.Error("Failed to start export worker", applog.FieldError, err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
		cli.WaitForShutdown(ctx, done)
		logger.Info("Worker stopped gracefully")
	case <-exporter.Done():
		if err := exporter.Err(); err != nil {
			logger.Error("Message consumption failed", applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Event source closed")
	}
}
