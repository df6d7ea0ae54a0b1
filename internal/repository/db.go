package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/homekeep-labs/homekeeper/internal/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventory_items (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	store_name          TEXT,
	purchase_date       TEXT,
	purchase_price      REAL,
	warranty_years      INTEGER NOT NULL DEFAULT 1,
	warranty_expiration TEXT,
	created_at          TEXT NOT NULL,
	updated_at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inventory_items_name ON inventory_items (name);
`

// Open opens (and if needed creates) the sqlite database at path and applies
// the schema. The connection is shared; sqlite handles its own locking.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, common.NewAppError("DB_OPEN_FAILED", "failed to open database", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("DB_PING_FAILED", "failed to ping database", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("DB_MIGRATE_FAILED", "failed to apply schema", err)
	}

	logger.Info("database ready", "path", cfg.Path)
	return db, nil
}
