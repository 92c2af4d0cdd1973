package models

import "gorm.io/gorm"

// Built-in role names seeded at startup.
const (
	RoleAdmin   = "Admin"
	RoleUser    = "User"
	RoleManager = "Manager"
	RoleEditor  = "Editor"
	RoleViewer  = "Viewer"
)

type Role struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`

	Permissions []Permission `gorm:"many2many:role_permissions;"`
}

// PermissionMap renders the role's permission set in the wire format:
// a map from permission name to an enabled flag.
func (r *Role) PermissionMap() map[string]bool {
	m := make(map[string]bool, len(r.Permissions))
	for _, p := range r.Permissions {
		m[p.Name] = true
	}
	return m
}
