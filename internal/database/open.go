// Package database opens the bun handle for the configured SQL driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
	_ "modernc.org/sqlite"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/runtimeconfig"
)

// sqlDriverName maps configured drivers to database/sql registrations.
var sqlDriverName = map[string]string{
	runtimeconfig.DriverSQLite3:  "sqlite3",
	runtimeconfig.DriverSQLite:   "sqlite",
	runtimeconfig.DriverPostgres: "pgx",
}

// Open connects to the configured database and verifies the connection.
// sqlite connections enable foreign keys so section rows follow their page.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	name, ok := sqlDriverName[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}

	sqlDB, err := sql.Open(name, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	db := bun.NewDB(sqlDB, dialectFor(driver))
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driver, err)
	}
	if driver != runtimeconfig.DriverPostgres {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database: enable foreign keys: %w", err)
		}
	}
	return db, nil
}

func dialectFor(driver string) schema.Dialect {
	if driver == runtimeconfig.DriverPostgres {
		return pgdialect.New()
	}
	return sqlitedialect.New()
}
