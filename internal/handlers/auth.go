package handlers

import (
	"net/http"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/database"
	"rbac-dashboard/internal/middleware"
	"rbac-dashboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	Users    *store.UserStore
	Verifier *store.CredentialVerifier
	Logger   zerolog.Logger
}

func NewAuthHandler(users *store.UserStore, verifier *store.CredentialVerifier, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Verifier: verifier, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
}

// Register creates a user with no role assignments. Roles are granted later
// by an admin (or backfilled on first profile fetch).
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.DOB == "" || req.Address == "" {
		fail(c, apperr.Validation("all fields are required"))
		return
	}

	user, err := h.Users.Create(store.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
		Address:  req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.Logger.Info().Str("email", user.Email).Uint("user_id", user.ID).Msg("user registered")

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Unauthorized("invalid email or password"))
		return
	}

	identity, err := h.Verifier.Verify(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	if err := middleware.SaveIdentity(c, identity); err != nil {
		fail(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    identity.UserID,
		"email": identity.Email,
		"role":  identity.Role,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if id := middleware.CurrentIdentity(c); id != nil {
		h.Logger.Info().Str("email", id.Email).Uint("user_id", id.UserID).Msg("user logged out")
		database.CreateAuditLog(h.Users.DB, id.UserID, "session", id.UserID, "logout", "")
	}
	if err := middleware.ClearIdentity(c); err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
