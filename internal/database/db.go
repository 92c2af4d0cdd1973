package database

import (
	"fmt"
	"strings"
	"time"

	"rbac-dashboard/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres, retrying while the database comes up.
func Open(dsn string, logger zerolog.Logger) (*gorm.DB, error) {
	const maxAttempts = 10

	var db *gorm.DB
	var err error
	for i := 1; i <= maxAttempts; i++ {
		logger.Info().Int("attempt", i).Int("max", maxAttempts).Msg("connecting to database")

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			logger.Info().Msg("connected to database")
			return db, nil
		}

		logger.Warn().Err(err).Msg("database connection failed")
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", maxAttempts, err)
}

// Migrate registers the explicit user_roles join model and runs auto
// migration for all tables.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "Roles", &models.UserRole{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Product{},
		&models.AuditLog{},
	)
}

// Seed creates the built-in roles and, when configured, a default admin
// account. Existing rows are left untouched.
func Seed(db *gorm.DB, adminEmail, adminPassword string, logger zerolog.Logger) error {
	roles := []struct {
		name string
		desc string
	}{
		{models.RoleAdmin, "Admin role"},
		{models.RoleUser, "User role"},
		{models.RoleManager, "Manager role"},
		{models.RoleEditor, "Editor role"},
		{models.RoleViewer, "Viewer role"},
	}

	for _, r := range roles {
		var count int64
		if err := db.Model(&models.Role{}).Where("name = ?", r.name).Count(&count).Error; err != nil {
			return fmt.Errorf("check role %s: %w", r.name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Role{Name: r.name, Description: r.desc}).Error; err != nil {
			return fmt.Errorf("create role %s: %w", r.name, err)
		}
		logger.Info().Str("role", r.name).Msg("created built-in role")
	}

	if adminEmail == "" || adminPassword == "" {
		return nil
	}
	return seedAdmin(db, adminEmail, adminPassword, logger)
}

func seedAdmin(db *gorm.DB, email, password string, logger zerolog.Logger) error {
	// same invariant as the user store: emails are stored lowercase
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	var admin models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		return fmt.Errorf("load admin role: %w", err)
	}

	user := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []models.Role{admin},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info().Str("email", email).Msg("created default admin user")
	return nil
}
