package main

import (
	"fmt"
	"strings"

	"finbud/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser creates an account plus its empty budget row in one
// transaction, so a registered user always has a budget to upsert into.
func RegisterUser(name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return fmt.Errorf("name required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("valid email required")
	}
	if len(password) < 8 { // basic password policy
		return fmt.Errorf("password too short (min 8)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return fmt.Errorf("user already exists")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	// ensure role exists (idempotent)
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err != nil {
		role = models.Role{Name: "user", Description: "regular user"}
		if err2 := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err2 != nil {
			return fmt.Errorf("failed to ensure user role: %v", err2)
		}
	}
	rid := role.ID
	user := models.User{Name: name, Email: email, HashedPassword: hashedPassword, RoleID: &rid}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Budget{UserID: user.ID}).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return fmt.Errorf("user already exists")
		}
		return err
	}
	return nil
}

// Authenticate verifies credentials. Failure reasons are deliberately not
// distinguished.
func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
