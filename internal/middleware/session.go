package middleware

import (
	"net/http"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/authz"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys.
const (
	SessionUserID = "user_id"
	SessionEmail  = "email"
	SessionRole   = "role"
)

const identityKey = "Identity"

// InjectIdentity resolves the session into an explicit authz.Identity and
// stores it on the request context. Routes downstream never touch the
// session directly.
func InjectIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get(SessionUserID); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				email, _ := sess.Get(SessionEmail).(string)
				role, _ := sess.Get(SessionRole).(string)
				c.Set(identityKey, &authz.Identity{UserID: uid, Email: email, Role: role})
			}
		}

		c.Next()
	}
}

// CurrentIdentity returns the caller's identity, or nil when the session is
// anonymous.
func CurrentIdentity(c *gin.Context) *authz.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*authz.Identity); ok {
			return id
		}
	}
	return nil
}

// SaveIdentity writes the identity claim into the session.
func SaveIdentity(c *gin.Context, id *authz.Identity) error {
	sess := sessions.Default(c)
	sess.Set(SessionUserID, id.UserID)
	sess.Set(SessionEmail, id.Email)
	sess.Set(SessionRole, id.Role)
	return sess.Save()
}

// ClearIdentity drops the session.
func ClearIdentity(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.RequireAuth(CurrentIdentity(c)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperr.Message(err)})
			return
		}
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.RequireRole(CurrentIdentity(c), roles...); err != nil {
			c.AbortWithStatusJSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
			return
		}
		c.Next()
	}
}
