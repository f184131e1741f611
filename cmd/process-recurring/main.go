// process-recurring materializes due recurring expense definitions into
// transactions and advances their next run dates. It is meant to be invoked
// by an external scheduler (cron) once a day; the exit status reports whether
// the run itself succeeded. Individual definition failures are logged and
// summarized but do not fail the run.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/recurring"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// load .env for local development; ignore when absent
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err, "path", cfg.Database.Path)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// today is taken in the configured timezone; due comparison is
	// day-granular
	loc := time.Local
	if cfg.Processor.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Processor.Timezone)
		if err != nil {
			logger.Error("invalid processor timezone", "timezone", cfg.Processor.Timezone, "error", err)
			os.Exit(1)
		}
	}

	timeout := time.Duration(cfg.Processor.DefinitionTimeout) * time.Second

	processor := recurring.NewProcessor(recurring.NewGormStore(db), logger, timeout)

	report, err := processor.Run(context.Background(), time.Now().In(loc))
	if err != nil {
		logger.Error("recurring expense run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("recurring expense run finished",
		"run_id", report.RunID,
		"date", report.Date,
		"checked", report.Checked,
		"processed", report.Processed,
		"failed", len(report.Failures))
}
