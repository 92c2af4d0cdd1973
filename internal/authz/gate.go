// Package authz is the authorization gate: pure checks over an explicit
// Identity value resolved from the session by the middleware layer.
package authz

import "rbac-dashboard/internal/apperr"

// Identity is the minimal claim attached to an authenticated session.
type Identity struct {
	UserID uint
	Email  string
	Role   string // primary role name
}

// RequireAuth denies callers without a session identity.
func RequireAuth(id *Identity) error {
	if id == nil || id.UserID == 0 {
		return apperr.Unauthorized("not authenticated")
	}
	return nil
}

// RequireRole denies callers whose primary role is not in the allowed set.
func RequireRole(id *Identity, roles ...string) error {
	if err := RequireAuth(id); err != nil {
		return err
	}
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return apperr.Forbidden("insufficient role")
}
