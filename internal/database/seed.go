package database

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/karashiro/task-assignment-api/internal/models"
)

// Seed inserts the default admin and a sample employee for local
// development. Existing accounts are left untouched.
func Seed(db *gorm.DB) error {
	accounts := []struct {
		username string
		password string
		role     models.Role
	}{
		{"admin", "admin123", models.RoleAdmin},
		{"employee1", "emp123", models.RoleEmployee},
	}

	for _, account := range accounts {
		var existing models.User
		err := db.Where("username = ?", account.username).First(&existing).Error
		if err == nil {
			log.Printf("User %q already exists, skipping", account.username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check user %q: %w", account.username, err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", account.username, err)
		}

		user := models.User{
			Username:     account.username,
			PasswordHash: string(hashedPassword),
			Role:         account.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %q: %w", account.username, err)
		}

		log.Printf("User %q created with role %s", account.username, account.role)
	}

	return nil
}
