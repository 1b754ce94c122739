package testing

import (
	"testing"

	"github.com/uptrace/bun"

	"github.com/ShahwaizZahid/Job-Listing/db"
)

// CreateTestDB creates an in-memory SQLite test database with the full
// schema applied. Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *bun.DB {
	t.Helper()

	bdb, err := db.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := db.Migrate(bdb, nil); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		bdb.Close()
	})

	return bdb
}
