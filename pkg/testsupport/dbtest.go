package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var memoryDBCounter atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory sqlite database. Every call gets
// its own database so tests do not observe each other's rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	n := memoryDBCounter.Add(1)
	return sql.Open("sqlite3", fmt.Sprintf("file:site_test_%d?mode=memory&cache=shared&_fk=1", n))
}

// NewBunSQLiteDB wraps NewSQLiteMemoryDB in a bun handle limited to a single
// connection, which keeps transactions and the shared memory database on the
// same sqlite connection.
func NewBunSQLiteDB() (*bun.DB, error) {
	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}
