package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/database"
	"rbac-dashboard/internal/middleware"
	"rbac-dashboard/internal/models"
	"rbac-dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	Store *store.RoleStore
}

func NewRoleHandler(s *store.RoleStore) *RoleHandler { return &RoleHandler{Store: s} }

type roleResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Permissions map[string]bool `json:"permissions"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toRoleResponse(r *models.Role) roleResponse {
	return roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.PermissionMap(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.Store.List()
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]roleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, toRoleResponse(&roles[i]))
	}
	c.JSON(http.StatusOK, out)
}

type roleRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Permissions map[string]bool `json:"permissions"`
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}

	role, err := h.Store.Create(req.Name, req.Description, req.Permissions)
	if err != nil {
		fail(c, err)
		return
	}

	h.audit(c, role.ID, "create", "created role "+role.Name)
	c.JSON(http.StatusCreated, toRoleResponse(role))
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}

	role, err := h.Store.Update(id, req.Description, req.Permissions)
	if err != nil {
		fail(c, err)
		return
	}

	h.audit(c, role.ID, "update", "updated role "+role.Name)
	c.JSON(http.StatusOK, toRoleResponse(role))
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.Store.Delete(id); err != nil {
		fail(c, err)
		return
	}

	h.audit(c, id, "delete", fmt.Sprintf("deleted role %d", id))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *RoleHandler) audit(c *gin.Context, roleID uint, action, details string) {
	var userID uint
	if id := middleware.CurrentIdentity(c); id != nil {
		userID = id.UserID
	}
	database.CreateAuditLog(h.Store.DB, userID, "role", roleID, action, details)
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid id format")
	}
	return uint(id), nil
}
