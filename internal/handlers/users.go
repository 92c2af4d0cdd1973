package handlers

import (
	"fmt"
	"net/http"
	"time"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/database"
	"rbac-dashboard/internal/middleware"
	"rbac-dashboard/internal/models"
	"rbac-dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Store *store.UserStore
}

func NewUserHandler(s *store.UserStore) *UserHandler { return &UserHandler{Store: s} }

type userRoleResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	DOB           *time.Time         `json:"dob"`
	Address       string             `json:"address"`
	EmailVerified *time.Time         `json:"emailVerified"`
	CreatedAt     time.Time          `json:"createdAt"`
	Roles         []userRoleResponse `json:"roles"`
}

func toUserResponse(u *models.User) userResponse {
	roles := make([]userRoleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, userRoleResponse{ID: r.ID, Name: r.Name})
	}
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		DOB:           u.DOB,
		Address:       u.Address,
		EmailVerified: u.EmailVerifiedAt,
		CreatedAt:     u.CreatedAt,
		Roles:         roles,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Store.List()
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
	Roles    []uint `json:"roles"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.Store.Create(store.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
		Address:  req.Address,
		RoleIDs:  req.Roles,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.audit(c, user.ID, "create", "created user "+user.Email)
	c.JSON(http.StatusCreated, toUserResponse(user))
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	DOB      *string `json:"dob"`
	Address  *string `json:"address"`
	Roles    *[]uint `json:"roles"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.Store.Update(id, store.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
		Address:  req.Address,
		RoleIDs:  req.Roles,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.audit(c, user.ID, "update", "updated user "+user.Email)
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.Store.Delete(id); err != nil {
		fail(c, err)
		return
	}

	h.audit(c, id, "delete", fmt.Sprintf("deleted user %d", id))
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *UserHandler) audit(c *gin.Context, targetID uint, action, details string) {
	var userID uint
	if id := middleware.CurrentIdentity(c); id != nil {
		userID = id.UserID
	}
	database.CreateAuditLog(h.Store.DB, userID, "user", targetID, action, details)
}
