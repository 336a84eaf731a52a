package database_test

import (
	"context"
	"errors"
	"testing"

	"campground_backend/internal/database"
	"campground_backend/internal/testkit"

	"github.com/jmoiron/sqlx"
)

func TestApplySchemaIsIdempotent(t *testing.T) {
	db := testkit.OpenDB(t)

	if err := database.ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("second ApplySchema() error = %v", err)
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM campsites`); err != nil {
		t.Fatalf("query campsites: %v", err)
	}
	if count != 0 {
		t.Errorf("campsites count = %d, want 0", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := testkit.OpenDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO amenities (name) VALUES (?)`, "Fire pit"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM amenities`); err != nil {
		t.Fatalf("count amenities: %v", err)
	}
	if count != 0 {
		t.Errorf("amenities count = %d, want 0 after rollback", count)
	}
}

func TestWithTxCommits(t *testing.T) {
	db := testkit.OpenDB(t)
	ctx := context.Background()

	err := database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO amenities (name) VALUES (?)`, "Water")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	var name string
	if err := db.Get(&name, `SELECT name FROM amenities`); err != nil {
		t.Fatalf("get amenity: %v", err)
	}
	if name != "Water" {
		t.Errorf("name = %q, want Water", name)
	}
}
