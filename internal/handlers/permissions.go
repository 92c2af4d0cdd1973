package handlers

import (
	"net/http"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/database"
	"rbac-dashboard/internal/middleware"
	"rbac-dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

// PermissionHandler exposes the derived permission catalog. It shares the
// RoleStore because permissions live and die with role permission sets.
type PermissionHandler struct {
	Store *store.RoleStore
}

func NewPermissionHandler(s *store.RoleStore) *PermissionHandler {
	return &PermissionHandler{Store: s}
}

func (h *PermissionHandler) List(c *gin.Context) {
	names, err := h.Store.ListPermissionNames()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

type permissionRequest struct {
	Name string `json:"name"`
}

func (h *PermissionHandler) Create(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}

	perm, err := h.Store.CreatePermission(req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	h.audit(c, perm.ID, "create", "created permission "+perm.Name)
	c.JSON(http.StatusCreated, gin.H{"message": "permission " + perm.Name + " added"})
}

func (h *PermissionHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.Store.DeletePermission(name); err != nil {
		fail(c, err)
		return
	}

	h.audit(c, 0, "delete", "deleted permission "+name)
	c.JSON(http.StatusOK, gin.H{"message": "permission " + name + " deleted from all roles"})
}

func (h *PermissionHandler) audit(c *gin.Context, permID uint, action, details string) {
	var userID uint
	if id := middleware.CurrentIdentity(c); id != nil {
		userID = id.UserID
	}
	database.CreateAuditLog(h.Store.DB, userID, "permission", permID, action, details)
}
