// Package initializer wires process-level infrastructure for the entry
// points: the logger, the database, and the seeded catalog.
package initializer

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/yieldvault/yieldvault/infra"
	infrarepo "github.com/yieldvault/yieldvault/infra/repository"
	"github.com/yieldvault/yieldvault/pkg/config"
	plansvc "github.com/yieldvault/yieldvault/pkg/service/plan"
)

// SetupLogger builds the process logger from config and installs it as
// the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	handler := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           level,
		Prefix:          cfg.Prefix,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// SetupDatabase connects, migrates the schema, and seeds the default plan
// catalog.
func SetupDatabase(ctx context.Context, cfg *config.App, logger *slog.Logger) (*gorm.DB, error) {
	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		return nil, err
	}
	if err := infra.AutoMigrate(db); err != nil {
		return nil, err
	}
	uow := infrarepo.NewUoW(db)
	if err := plansvc.New(uow, logger).SeedDefaults(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
