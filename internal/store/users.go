package store

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 8

// UserStore is CRUD over user records and their role assignments. Emails are
// stored lowercased so uniqueness is case-insensitive.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{DB: db} }

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	DOB      string // "2006-01-02", optional
	Address  string
	RoleIDs  []uint
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string // re-hash only when set and non-blank
	DOB      *string
	Address  *string
	RoleIDs  *[]uint // replace assignments when set
}

func (s *UserStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Preload("Roles").Order("created_at desc").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

func (s *UserStore) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("Roles").
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

func (s *UserStore) Create(in CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)

	if email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validation("invalid email format")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	dob, err := parseDOB(in.DOB)
	if err != nil {
		return nil, err
	}

	taken, err := s.emailTaken(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		DOB:          dob,
		Address:      address,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return replaceRoles(tx, user.ID, in.RoleIDs)
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return s.Get(user.ID)
}

// Update applies a partial update. The email conflict check runs before any
// write so a rejected update leaves every field untouched.
func (s *UserStore) Update(id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		updates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !emailPattern.MatchString(email) {
			return nil, apperr.Validation("invalid email format")
		}
		if email != user.Email {
			taken, err := s.emailTaken(email, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict("email already in use")
			}
		}
		updates["email"] = email
	}
	if in.DOB != nil {
		dob, err := parseDOB(*in.DOB)
		if err != nil {
			return nil, err
		}
		updates["dob"] = dob
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		if len(*in.Password) < minPasswordLen {
			return nil, apperr.Validation("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		updates["password_hash"] = string(hash)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(user).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.RoleIDs != nil {
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRole{}).Error; err != nil {
				return err
			}
			return replaceRoles(tx, user.ID, *in.RoleIDs)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return s.Get(id)
}

// Delete removes the user's role assignments first, then the user row. The
// row is deleted unscoped so the email is free for a later registration.
func (s *UserStore) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(user).Error
	})
	if err != nil {
		return asAppError(err)
	}
	return nil
}

// OrderedRoles returns the user's roles in assignment order; the first entry
// is the primary role.
func (s *UserStore) OrderedRoles(userID uint) ([]models.Role, error) {
	var roles []models.Role
	err := s.DB.
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("user_roles.created_at asc, user_roles.role_id asc").
		Find(&roles).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return roles, nil
}

// EnsureDefaultRole backfills a role for users that have none. It assigns
// Admin, matching the behavior this replaces; see DESIGN.md for why that is
// a questionable default.
func (s *UserStore) EnsureDefaultRole(userID uint) (*models.Role, error) {
	roles, err := s.OrderedRoles(userID)
	if err != nil {
		return nil, err
	}
	if len(roles) > 0 {
		return &roles[0], nil
	}

	var admin models.Role
	if err := s.DB.Where("name = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(errors.New("admin role missing"))
		}
		return nil, apperr.Internal(err)
	}
	if err := s.DB.Create(&models.UserRole{UserID: userID, RoleID: admin.ID, CreatedAt: time.Now()}).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &admin, nil
}

func (s *UserStore) emailTaken(email string, excludeID uint) (bool, error) {
	q := s.DB.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// replaceRoles inserts assignment rows in payload order. CreatedAt gets a
// strictly increasing offset per row so the first listed role stays primary.
func replaceRoles(tx *gorm.DB, userID uint, roleIDs []uint) error {
	if len(roleIDs) == 0 {
		return nil
	}

	seen := map[uint]struct{}{}
	now := time.Now()
	i := 0
	for _, roleID := range roleIDs {
		if _, dup := seen[roleID]; dup {
			continue
		}
		seen[roleID] = struct{}{}

		var count int64
		if err := tx.Model(&models.Role{}).Where("id = ?", roleID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.Validation("unknown role id")
		}

		row := models.UserRole{
			UserID:    userID,
			RoleID:    roleID,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		i++
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseDOB(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, apperr.Validation("invalid date of birth, expected YYYY-MM-DD")
	}
	return &t, nil
}
