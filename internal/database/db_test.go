package database

import (
	"testing"

	"rbac-dashboard/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedCreatesBuiltinRoles(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db, "", "", zerolog.Nop()))

	var names []string
	require.NoError(t, db.Model(&models.Role{}).Pluck("name", &names).Error)
	require.ElementsMatch(t, []string{
		models.RoleAdmin, models.RoleUser, models.RoleManager, models.RoleEditor, models.RoleViewer,
	}, names)

	// idempotent
	require.NoError(t, Seed(db, "", "", zerolog.Nop()))
	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	require.EqualValues(t, 5, count)
}

// The seeded admin follows the same invariant as the user store: emails are
// stored lowercase regardless of how the env var is cased.
func TestSeedAdminEmailNormalized(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db, "  Admin@Example.COM ", "admin-secret", zerolog.Nop()))

	var admin models.User
	require.NoError(t, db.Preload("Roles").Where("email = ?", "admin@example.com").First(&admin).Error)
	require.Len(t, admin.Roles, 1)
	require.Equal(t, models.RoleAdmin, admin.Roles[0].Name)

	// re-seeding with a different casing must not create a second account
	require.NoError(t, Seed(db, "ADMIN@example.com", "admin-secret", zerolog.Nop()))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
