// Command createadmin bootstraps a superuser account: a registration with
// the role forced to ADMIN and the staff/superuser flags set.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
)

func main() {
	config.InitDB()

	email := os.Getenv("ADMIN_EMAIL")
	nome := os.Getenv("ADMIN_NOME")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || nome == "" || password == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_NOME and ADMIN_PASSWORD are required")
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Println("⚠️  Admin user already exists with email:", email)
		os.Exit(0)
	}

	user := models.User{
		Nome:        nome,
		Email:       email,
		Role:        models.RoleAdmin,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := user.SetPassword(password); err != nil {
		log.Fatalf("invalid password: %v", err)
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("✅ Admin user created successfully!")
	fmt.Println("   Email:", user.Email)
}
