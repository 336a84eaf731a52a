// Package testkit opens throwaway databases for package tests.
package testkit

import (
	"context"
	"path/filepath"
	"testing"

	"campground_backend/internal/config"
	"campground_backend/internal/database"

	"github.com/jmoiron/sqlx"
)

// OpenDB returns a sqlite database under t.TempDir() with the schema applied.
// It is closed automatically when the test ends.
func OpenDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "campground.db"),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}
