package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migrations returns the embedded SQL migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Up applies every pending migration and logs one event per step.
func Up(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With(slog.String("component", "database"), slog.String("db_host", dbHost))

	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		log.Error("db_migration_failed", slog.String("error_message", err.Error()))
		return fmt.Errorf("goose new provider: %w", err)
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		log.Error("db_migration_failed", slog.String("error_message", err.Error()))
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Info("db_migration_start", slog.Int64("version", current))

	results, err := provider.Up(ctx)
	for _, r := range results {
		attrs := []any{
			slog.String("migration_step", r.Source.Path),
			slog.Int64("version", r.Source.Version),
			slog.Int64("step_duration_ms", r.Duration.Milliseconds()),
		}
		if r.Error != nil {
			log.Error("db_migration_step", append(attrs, slog.String("error_message", r.Error.Error()))...)
			continue
		}
		log.Info("db_migration_step", attrs...)
	}
	if err != nil {
		log.Error("db_migration_failed",
			slog.String("error_message", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("goose up: %w", err)
	}

	log.Info("db_migration_success",
		slog.Int("applied", len(results)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
