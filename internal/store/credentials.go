package store

import (
	"errors"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/authz"
	"rbac-dashboard/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier validates email/password pairs and derives the minimal
// identity claim for the session. The caller-facing failure is always the
// same generic error; only the log tells "no such user" from "bad password".
type CredentialVerifier struct {
	Users  *UserStore
	Logger zerolog.Logger
}

func NewCredentialVerifier(users *UserStore, logger zerolog.Logger) *CredentialVerifier {
	return &CredentialVerifier{Users: users, Logger: logger}
}

func (v *CredentialVerifier) Verify(email, password string) (*authz.Identity, error) {
	if email == "" || password == "" {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	user, err := v.Users.GetByEmail(email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			v.Logger.Warn().Str("email", email).Msg("login failed: no such user")
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			v.Logger.Warn().Str("email", email).Uint("user_id", user.ID).Msg("login failed: wrong password")
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, apperr.Internal(err)
	}

	role := primaryRoleName(v.Users, user)

	v.Logger.Info().Str("email", user.Email).Uint("user_id", user.ID).Str("role", role).
		Msg("user authenticated")

	return &authz.Identity{UserID: user.ID, Email: user.Email, Role: role}, nil
}

// primaryRoleName resolves the user's first role assignment, falling back to
// "User" when there is none.
func primaryRoleName(users *UserStore, user *models.User) string {
	roles, err := users.OrderedRoles(user.ID)
	if err != nil || len(roles) == 0 {
		return models.RoleUser
	}
	return roles[0].Name
}
