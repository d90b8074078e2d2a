// Package sqldb persists documents and their extracted fields through
// database/sql. The DSN scheme picks the driver: postgres://... runs on pgx,
// sqlite://path on the embedded sqlite driver (the CLI default).
package sqldb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func Open(dsn string) (*sql.DB, error) {
	driver, source := driverFor(dsn)

	if driver == "sqlite" {
		if dir := filepath.Dir(source); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if driver == "sqlite" {
		// The sqlite driver serializes writes; a single connection avoids
		// SQLITE_BUSY under the worker's concurrency.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func driverFor(dsn string) (driver, source string) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite:")
	default:
		return "pgx", dsn
	}
}
