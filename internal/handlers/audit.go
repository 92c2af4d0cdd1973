package handlers

import (
	"net/http"
	"time"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists the most recent admin mutations.
type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler { return &AuditHandler{DB: db} }

type auditResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `json:"userId"`
	Entity    string    `json:"entity"`
	EntityID  uint      `json:"entityId"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

func (h *AuditHandler) List(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.DB.Order("created_at desc").Limit(200).Find(&logs).Error; err != nil {
		fail(c, apperr.Internal(err))
		return
	}

	out := make([]auditResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, auditResponse{
			ID:        l.ID,
			CreatedAt: l.CreatedAt,
			UserID:    l.UserID,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Action:    l.Action,
			Details:   l.Details,
		})
	}
	c.JSON(http.StatusOK, out)
}
