// Package databasetest provides migrated in-memory databases for tests.
package databasetest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/golang-cafe/job-portal/internal/database"
)

var seq int64

// New returns a private, migrated in-memory sqlite database that is closed
// when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:portal_test_%d?mode=memory&cache=shared", atomic.AddInt64(&seq, 1))
	db, err := database.Open(ctx, database.SQLite, dsn, 1)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.CloseDbConn(db) })
	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
