package store

import (
	"testing"

	"rbac-dashboard/internal/database"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a unique in-memory database per test and runs the real
// migration path so the join tables match production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedRoles creates the built-in roles without an admin account.
func seedRoles(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := database.Seed(db, "", "", zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}
}
