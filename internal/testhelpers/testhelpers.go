package testhelpers

import (
	"context"
	"testing"

	"github.com/johnwards/retail/internal/database"
	"github.com/johnwards/retail/internal/seed"
)

// NewTestDB returns an in-memory SQLite database configured the same way as
// production. The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewSchemaDB returns an in-memory database with the retail schema applied
// and no rows.
func NewSchemaDB(t *testing.T) *database.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

// NewSeededDB returns an in-memory database holding the fixed dataset.
func NewSeededDB(t *testing.T) *database.DB {
	t.Helper()

	db := NewSchemaDB(t)
	if err := seed.ResetAndSeed(context.Background(), db); err != nil {
		t.Fatalf("reset and seed: %v", err)
	}
	return db
}
