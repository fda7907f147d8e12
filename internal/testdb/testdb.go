// Package testdb opens throwaway in-memory SQLite databases with the full
// schema applied, for repository-level tests.
package testdb

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mwitczak/cabplanner/pkg/migrate"
)

var dbSeq atomic.Int64

// Open returns a migrated in-memory database. Each call gets its own
// database; the connection is closed when the test finishes.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("extracting sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive for the whole
	// test and guarantees the pragma applies to every statement.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}

	if err := migrate.Up(context.Background(), sqlDB); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}
