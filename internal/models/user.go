package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string `gorm:"size:255"`
	Email           string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string `gorm:"not null"`
	DOB             *time.Time
	Address         string `gorm:"size:255"`
	EmailVerifiedAt *time.Time

	Roles []Role `gorm:"many2many:user_roles;"`
}

// UserRole is the explicit join table between users and roles. CreatedAt
// makes "primary role = first assignment" deterministic.
type UserRole struct {
	UserID    uint `gorm:"primaryKey"`
	RoleID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
