package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"invoicerpa/internal/common"
)

// Config holds run-history database settings.
type Config struct {
	DSN         string // postgres DSN; empty -> in-memory SQLite
	DialTimeout time.Duration
}

// DB wraps the run-history connection together with its dialect, which the
// repositories need for placeholder rewriting.
type DB struct {
	*sql.DB
	Dialect string // "pgx" | "sqlite"
}

// Open connects to Postgres when a DSN is configured and falls back to an
// in-memory SQLite database otherwise, then applies the schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	driver, dsn := "pgx", cfg.DSN
	if cfg.DSN == "" {
		driver, dsn = "sqlite", "file:invoicerpa?mode=memory&cache=shared"
	}
	logger.Info("connecting to run-history database", "driver", driver)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, common.NewAppError("DB_OPEN", "open run-history database", err)
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("DB_PING", "ping run-history database", err)
	}

	out := &DB{DB: db, Dialect: driver}
	if err := out.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("run-history database ready")
	return out, nil
}

// Schema sticks to TEXT/INTEGER columns so the same DDL runs on both engines.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		document_count INTEGER NOT NULL,
		record_count INTEGER NOT NULL,
		total_amount TEXT NOT NULL,
		unique_vendor_count INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS run_documents (
		run_id TEXT NOT NULL,
		source_id TEXT NOT NULL,
		status TEXT NOT NULL,
		skip_reason TEXT NOT NULL DEFAULT '',
		invoice_number TEXT NOT NULL DEFAULT '',
		vendor TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_documents_run_id ON run_documents (run_id)`,
}

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return common.NewAppError("DB_MIGRATE", "apply run-history schema", err)
		}
	}
	return nil
}

var placeholderRe = regexp.MustCompile(`\$\d+`)

// rebind rewrites $N placeholders to ? for SQLite. Arguments are always
// passed in ordinal order, so a plain substitution is enough.
func (db *DB) rebind(query string) string {
	if db.Dialect == "sqlite" {
		return placeholderRe.ReplaceAllString(query, "?")
	}
	return query
}
