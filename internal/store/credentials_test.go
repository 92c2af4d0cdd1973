package store

import (
	"testing"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestVerifyValidCredentials(t *testing.T) {
	db := setupTestDB(t)
	seedRoles(t, db)
	users := NewUserStore(db)
	v := NewCredentialVerifier(users, zerolog.Nop())

	var editor models.Role
	require.NoError(t, db.Where("name = ?", models.RoleEditor).First(&editor).Error)

	_, err := users.Create(CreateUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
		RoleIDs:  []uint{editor.ID},
	})
	require.NoError(t, err)

	identity, err := v.Verify("Ada@Example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", identity.Email)
	require.Equal(t, models.RoleEditor, identity.Role)
	require.NotZero(t, identity.UserID)
}

// Wrong password and unknown user must be indistinguishable to the caller.
func TestVerifyFailuresAreGeneric(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	v := NewCredentialVerifier(users, zerolog.Nop())

	_, err := users.Create(CreateUserInput{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, errWrongPass := v.Verify("ada@example.com", "wrong-password")
	_, errNoUser := v.Verify("ghost@example.com", "secret123")

	require.True(t, apperr.IsKind(errWrongPass, apperr.KindUnauthorized))
	require.True(t, apperr.IsKind(errNoUser, apperr.KindUnauthorized))
	require.Equal(t, apperr.Message(errWrongPass), apperr.Message(errNoUser))
}

func TestVerifyFallsBackToUserRole(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	v := NewCredentialVerifier(users, zerolog.Nop())

	_, err := users.Create(CreateUserInput{Email: "norole@example.com", Password: "secret123"})
	require.NoError(t, err)

	identity, err := v.Verify("norole@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, identity.Role)
}
