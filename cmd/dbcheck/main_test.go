package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/golang-cafe/job-portal/internal/config"
	"github.com/golang-cafe/job-portal/internal/database"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCheckMigratedDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portal.db")
	db, err := database.Open(ctx, database.SQLite, path, 1)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.CloseDbConn(db)

	cfg := config.Config{DatabaseDriver: config.DriverSQLite, DatabaseName: path}
	if err := check(ctx, cfg); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheckUnmigratedDatabase(t *testing.T) {
	cfg := config.Config{DatabaseDriver: config.DriverSQLite, DatabaseName: filepath.Join(t.TempDir(), "empty.db")}
	if err := check(context.Background(), cfg); err == nil {
		t.Fatal("expected counting an empty schema to fail")
	}
}
