package authz

import (
	"testing"

	"rbac-dashboard/internal/apperr"

	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	require.Error(t, RequireAuth(nil))
	require.Error(t, RequireAuth(&Identity{}))
	require.NoError(t, RequireAuth(&Identity{UserID: 1}))

	err := RequireAuth(nil)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestRequireRole(t *testing.T) {
	admin := &Identity{UserID: 1, Role: "Admin"}
	viewer := &Identity{UserID: 2, Role: "Viewer"}

	require.NoError(t, RequireRole(admin, "Admin"))
	require.NoError(t, RequireRole(viewer, "Admin", "Viewer"))

	err := RequireRole(viewer, "Admin", "Manager")
	require.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// anonymous callers get 401, not 403
	err = RequireRole(nil, "Admin")
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}
