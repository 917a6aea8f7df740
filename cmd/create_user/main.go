package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"finbud/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: go run ./cmd/create_user <name> <email> <password>")
		os.Exit(2)
	}
	name := os.Args[1]
	email := strings.ToLower(os.Args[2])
	password := os.Args[3]

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	// ensure the user role exists
	var role models.Role
	if err := db.Where("name = ?", "user").First(&role).Error; err != nil {
		role = models.Role{Name: "user", Description: "regular user"}
		db.Create(&role)
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", email, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	rid := role.ID
	user := models.User{Name: name, Email: email, HashedPassword: hpw, RoleID: &rid}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	// every account gets its one-to-one budget row
	if err := db.Create(&models.Budget{UserID: user.ID}).Error; err != nil {
		log.Printf("warning: failed to create budget: %v", err)
	}
	fmt.Printf("created user %s id=%d\n", email, user.ID)
}
