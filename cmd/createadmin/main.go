package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nikhilbhatia/shift-management-api/pkg/auth"
	"github.com/nikhilbhatia/shift-management-api/pkg/database"
	"github.com/nikhilbhatia/shift-management-api/pkg/models"
)

// Seeds or resets the system admin account from the command line:
//
//	go run ./cmd/createadmin <username> <password>
func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 3 {
		fmt.Println("Usage: createadmin <username> <password>")
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Printf("Error: could not hash password: %v\n", err)
		os.Exit(1)
	}

	db := database.InitDB()

	var admin models.Admin
	if err := db.Where("username = ?", username).First(&admin).Error; err == nil {
		admin.PasswordHash = hash
		if err := db.Save(&admin).Error; err != nil {
			fmt.Printf("Error: could not update admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Password updated for admin %q\n", username)
		return
	}

	admin = models.Admin{
		Name:         "System Admin",
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		fmt.Printf("Error: could not create admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin %q created\n", username)
}
