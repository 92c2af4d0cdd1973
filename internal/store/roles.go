package store

import (
	"errors"
	"sort"
	"strings"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/models"

	"gorm.io/gorm"
)

// RoleStore is CRUD over role definitions and their permission sets.
// Permissions are first-class rows linked to roles through role_permissions;
// on the wire a role still carries a map[string]bool permission set.
type RoleStore struct {
	DB *gorm.DB
}

func NewRoleStore(db *gorm.DB) *RoleStore { return &RoleStore{DB: db} }

func (s *RoleStore) List() ([]models.Role, error) {
	var roles []models.Role
	if err := s.DB.Preload("Permissions").Order("id asc").Find(&roles).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return roles, nil
}

func (s *RoleStore) Get(id uint) (*models.Role, error) {
	var role models.Role
	if err := s.DB.Preload("Permissions").First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role not found")
		}
		return nil, apperr.Internal(err)
	}
	return &role, nil
}

// Create inserts a role with the enabled keys of perms attached. Unknown
// permission names are created on the fly.
func (s *RoleStore) Create(name, description string, perms map[string]bool) (*models.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("role name is required")
	}

	var count int64
	if err := s.DB.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("role name already exists")
	}

	role := models.Role{Name: name, Description: strings.TrimSpace(description)}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		permissions, err := ensurePermissions(tx, perms)
		if err != nil {
			return err
		}
		role.Permissions = permissions
		return tx.Create(&role).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return &role, nil
}

// Update replaces the role's description and permission set.
func (s *RoleStore) Update(id uint, description string, perms map[string]bool) (*models.Role, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		role.Description = strings.TrimSpace(description)
		if err := tx.Model(role).Update("description", role.Description).Error; err != nil {
			return err
		}
		permissions, err := ensurePermissions(tx, perms)
		if err != nil {
			return err
		}
		if err := tx.Model(role).Association("Permissions").Replace(permissions); err != nil {
			return err
		}
		role.Permissions = permissions
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return role, nil
}

// Delete removes the role and cascades its user_roles and role_permissions
// rows so no dangling assignments survive. The delete is unscoped so the
// unique name becomes reusable immediately.
func (s *RoleStore) Delete(id uint) error {
	role, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Model(role).Association("Permissions").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(role).Error
	})
	if err != nil {
		return asAppError(err)
	}
	return nil
}

// ListPermissionNames returns every known permission name as a sorted set.
func (s *RoleStore) ListPermissionNames() ([]string, error) {
	var names []string
	if err := s.DB.Model(&models.Permission{}).Pluck("name", &names).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	sort.Strings(names)
	return names, nil
}

// CreatePermission registers a permission name. Creating an existing name is
// a no-op.
func (s *RoleStore) CreatePermission(name string) (*models.Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("permission name is required")
	}

	var perm models.Permission
	if err := s.DB.Where("name = ?", name).FirstOrCreate(&perm, models.Permission{Name: name}).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &perm, nil
}

// DeletePermission removes the permission from every role's set and deletes
// the permission row itself.
func (s *RoleStore) DeletePermission(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("permission name is required")
	}

	var perm models.Permission
	if err := s.DB.Where("name = ?", name).First(&perm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("permission not found")
		}
		return apperr.Internal(err)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE permission_id = ?", perm.ID).Error; err != nil {
			return err
		}
		// unscoped, so the name can be registered again later
		return tx.Unscoped().Delete(&perm).Error
	})
	if err != nil {
		return asAppError(err)
	}
	return nil
}

// ensurePermissions resolves the enabled keys of perms to permission rows,
// creating any that do not exist yet.
func ensurePermissions(tx *gorm.DB, perms map[string]bool) ([]models.Permission, error) {
	names := make([]string, 0, len(perms))
	for name, enabled := range perms {
		name = strings.TrimSpace(name)
		if !enabled || name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	permissions := make([]models.Permission, 0, len(names))
	for _, name := range names {
		var perm models.Permission
		if err := tx.Where("name = ?", name).FirstOrCreate(&perm, models.Permission{Name: name}).Error; err != nil {
			return nil, err
		}
		permissions = append(permissions, perm)
	}
	return permissions, nil
}

// asAppError passes through taxonomy errors and wraps everything else as an
// internal fault.
func asAppError(err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e
	}
	return apperr.Internal(err)
}
