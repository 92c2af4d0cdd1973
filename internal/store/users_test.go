package store

import (
	"testing"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/models"

	"github.com/stretchr/testify/require"
)

func TestUserCreateNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)

	user, err := s.Create(CreateUserInput{
		Name:     "  Ada Lovelace  ",
		Email:    "  Ada@Example.COM ",
		Password: "secret123",
		DOB:      "1815-12-10",
		Address:  "London",
	})
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", user.Name)
	require.Equal(t, "ada@example.com", user.Email)
	require.NotEqual(t, "secret123", user.PasswordHash)
	require.NotNil(t, user.DOB)
}

func TestUserCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)

	cases := []struct {
		name string
		in   CreateUserInput
	}{
		{"missing email", CreateUserInput{Password: "secret123"}},
		{"missing password", CreateUserInput{Email: "a@b.com"}},
		{"bad email", CreateUserInput{Email: "not-an-email", Password: "secret123"}},
		{"short password", CreateUserInput{Email: "a@b.com", Password: "short"}},
		{"bad dob", CreateUserInput{Email: "a@b.com", Password: "secret123", DOB: "10/12/1815"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(tc.in)
			require.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestUserCreateDuplicateEmailCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)

	_, err := s.Create(CreateUserInput{Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = s.Create(CreateUserInput{Email: "DUP@EXAMPLE.COM", Password: "secret123"})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUserCreateWithRolesInOrder(t *testing.T) {
	db := setupTestDB(t)
	seedRoles(t, db)
	s := NewUserStore(db)

	var editor, viewer models.Role
	require.NoError(t, db.Where("name = ?", models.RoleEditor).First(&editor).Error)
	require.NoError(t, db.Where("name = ?", models.RoleViewer).First(&viewer).Error)

	user, err := s.Create(CreateUserInput{
		Email:    "multi@example.com",
		Password: "secret123",
		RoleIDs:  []uint{viewer.ID, editor.ID},
	})
	require.NoError(t, err)

	roles, err := s.OrderedRoles(user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	// first listed role is the primary role
	require.Equal(t, models.RoleViewer, roles[0].Name)
}

func TestUserCreateUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)

	_, err := s.Create(CreateUserInput{
		Email:    "x@example.com",
		Password: "secret123",
		RoleIDs:  []uint{4242},
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	// the failed role attach must roll the user back too
	_, err = s.GetByEmail("x@example.com")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUserUpdateEmailConflictIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)

	_, err := s.Create(CreateUserInput{Name: "First", Email: "first@example.com", Password: "secret123"})
	require.NoError(t, err)
	second, err := s.Create(CreateUserInput{Name: "Second", Email: "second@example.com", Password: "secret123"})
	require.NoError(t, err)

	newName := "Renamed"
	takenEmail := "First@Example.com"
	_, err = s.Update(second.ID, UpdateUserInput{Name: &newName, Email: &takenEmail})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))

	// no partial application of the name change
	got, err := s.Get(second.ID)
	require.NoError(t, err)
	require.Equal(t, "Second", got.Name)
	require.Equal(t, "second@example.com", got.Email)
}

func TestUserUpdatePasswordOptional(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)

	user, err := s.Create(CreateUserInput{Email: "p@example.com", Password: "secret123"})
	require.NoError(t, err)
	originalHash := user.PasswordHash

	blank := "   "
	updated, err := s.Update(user.ID, UpdateUserInput{Password: &blank})
	require.NoError(t, err)
	require.Equal(t, originalHash, updated.PasswordHash)

	fresh := "newsecret99"
	updated, err = s.Update(user.ID, UpdateUserInput{Password: &fresh})
	require.NoError(t, err)
	require.NotEqual(t, originalHash, updated.PasswordHash)
}

func TestUserUpdateReplacesRoles(t *testing.T) {
	db := setupTestDB(t)
	seedRoles(t, db)
	s := NewUserStore(db)

	var editor, viewer models.Role
	require.NoError(t, db.Where("name = ?", models.RoleEditor).First(&editor).Error)
	require.NoError(t, db.Where("name = ?", models.RoleViewer).First(&viewer).Error)

	user, err := s.Create(CreateUserInput{
		Email:    "r@example.com",
		Password: "secret123",
		RoleIDs:  []uint{editor.ID},
	})
	require.NoError(t, err)

	newRoles := []uint{viewer.ID}
	_, err = s.Update(user.ID, UpdateUserInput{RoleIDs: &newRoles})
	require.NoError(t, err)

	roles, err := s.OrderedRoles(user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	require.Equal(t, models.RoleViewer, roles[0].Name)
}

func TestUserDeleteCascadesAssignments(t *testing.T) {
	db := setupTestDB(t)
	seedRoles(t, db)
	s := NewUserStore(db)

	var editor models.Role
	require.NoError(t, db.Where("name = ?", models.RoleEditor).First(&editor).Error)

	user, err := s.Create(CreateUserInput{
		Email:    "gone@example.com",
		Password: "secret123",
		RoleIDs:  []uint{editor.ID},
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(user.ID))

	var assignments int64
	require.NoError(t, db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&assignments).Error)
	require.Zero(t, assignments)

	_, err = s.Get(user.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.True(t, apperr.IsKind(s.Delete(user.ID), apperr.KindNotFound))
}

// Deleting a user frees their email: a later registration with the same
// address must succeed instead of tripping the unique index.
func TestUserEmailReusableAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)

	user, err := s.Create(CreateUserInput{Name: "First", Email: "reuse@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(user.ID))

	recreated, err := s.Create(CreateUserInput{Name: "Second", Email: "Reuse@Example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEqual(t, user.ID, recreated.ID)
	require.Equal(t, "reuse@example.com", recreated.Email)
}

// A user with zero assignments gets Admin backfilled on profile fetch. That
// mirrors the behavior this system replaces; it is documented in DESIGN.md
// as a questionable default, and this test pins it down deliberately.
func TestEnsureDefaultRoleAssignsAdmin(t *testing.T) {
	db := setupTestDB(t)
	seedRoles(t, db)
	s := NewUserStore(db)

	user, err := s.Create(CreateUserInput{Email: "bare@example.com", Password: "secret123"})
	require.NoError(t, err)

	role, err := s.EnsureDefaultRole(user.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, role.Name)

	// exactly one assignment, and the call is idempotent
	role, err = s.EnsureDefaultRole(user.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, role.Name)

	var assignments int64
	require.NoError(t, db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&assignments).Error)
	require.EqualValues(t, 1, assignments)
}

func TestEnsureDefaultRoleKeepsExisting(t *testing.T) {
	db := setupTestDB(t)
	seedRoles(t, db)
	s := NewUserStore(db)

	var viewer models.Role
	require.NoError(t, db.Where("name = ?", models.RoleViewer).First(&viewer).Error)

	user, err := s.Create(CreateUserInput{
		Email:    "has-role@example.com",
		Password: "secret123",
		RoleIDs:  []uint{viewer.ID},
	})
	require.NoError(t, err)

	role, err := s.EnsureDefaultRole(user.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleViewer, role.Name)
}
