package handlers

import (
	"net/http"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/middleware"
	"rbac-dashboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	Users  *store.UserStore
	Logger zerolog.Logger
}

func NewProfileHandler(users *store.UserStore, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{Users: users, Logger: logger}
}

// Get returns the current user with their primary role. Users without any
// assignment get one backfilled (see UserStore.EnsureDefaultRole) and the
// session role is refreshed to match.
func (h *ProfileHandler) Get(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	user, err := h.Users.Get(identity.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	role, err := h.Users.EnsureDefaultRole(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	if role.Name != identity.Role {
		identity.Role = role.Name
		if err := middleware.SaveIdentity(c, identity); err != nil {
			fail(c, apperr.Internal(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role": gin.H{
			"id":          role.ID,
			"name":        role.Name,
			"description": role.Description,
		},
		"lastLogin": user.EmailVerifiedAt,
	})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Update changes the caller's own name and email. The session email is the
// identity key, so it is rewritten after a successful change.
func (h *ProfileHandler) Update(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" {
		fail(c, apperr.Validation("name and email are required"))
		return
	}

	user, err := h.Users.Update(identity.UserID, store.UpdateUserInput{
		Name:  &req.Name,
		Email: &req.Email,
	})
	if err != nil {
		fail(c, err)
		return
	}

	if user.Email != identity.Email {
		identity.Email = user.Email
		if err := middleware.SaveIdentity(c, identity); err != nil {
			fail(c, apperr.Internal(err))
			return
		}
	}

	h.Logger.Info().Uint("user_id", user.ID).Msg("profile updated")

	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "user": toUserResponse(user)})
}
