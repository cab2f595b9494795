package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/runtimeconfig"
)

func TestOpenSQLiteDrivers(t *testing.T) {
	cases := []struct {
		driver string
		dsn    string
	}{
		{driver: runtimeconfig.DriverSQLite3, dsn: fmt.Sprintf("file:open_mattn_%d?mode=memory&cache=shared", time.Now().UnixNano())},
		{driver: runtimeconfig.DriverSQLite, dsn: fmt.Sprintf("file:open_modernc_%d?mode=memory&cache=shared", time.Now().UnixNano())},
	}
	for _, tc := range cases {
		t.Run(tc.driver, func(t *testing.T) {
			ctx := context.Background()
			db, err := Open(ctx, runtimeconfig.StorageConfig{Driver: tc.driver, DSN: tc.dsn, MaxOpenConns: 1})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer db.Close()

			var enabled int
			if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
				t.Fatalf("pragma: %v", err)
			}
			if enabled != 1 {
				t.Fatalf("expected foreign keys enabled, got %d", enabled)
			}
		})
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), runtimeconfig.StorageConfig{Driver: "oracle", DSN: "x"})
	if !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}
