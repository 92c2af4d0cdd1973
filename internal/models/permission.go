package models

import "gorm.io/gorm"

// Permission is a named capability flag. Roles reference permissions through
// the role_permissions join table; a role "has" a permission when a join row
// exists.
type Permission struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:100;not null"`
}
