package database

import (
	"rbac-dashboard/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog records an admin mutation. Failures are swallowed: the
// audit trail is best-effort and must not fail the request.
func CreateAuditLog(db *gorm.DB, userID uint, entity string, entityID uint, action, details string) {
	if db == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = db.Create(&record).Error
}
