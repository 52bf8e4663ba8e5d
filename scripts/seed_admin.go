// Seeds an initial Admin account so a fresh deployment can log in.
// Usage: go run scripts/seed_admin.go admin@example.com secret "Admin Name"
package main

import (
	"fmt"
	"os"

	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/utils"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: seed_admin <email> <password> <name>")
		os.Exit(1)
	}
	email, password, name := os.Args[1], os.Args[2], os.Args[3]

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	db := models.GetDB()

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("User %s already exists (id=%d, role=%s)\n", email, existing.ID, existing.Role)
		os.Exit(1)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	admin := models.User{
		Email:    email,
		Name:     name,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		fmt.Printf("Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created admin %s (id=%d)\n", email, admin.ID)
}
