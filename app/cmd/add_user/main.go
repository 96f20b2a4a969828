package main

import (
	"flag"
	"fmt"
	"os"

	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/models"
	"school-management/app/validation"
)

type newUser struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"required,oneof=admin teacher student"`
}

func main() {
	var u newUser
	flag.StringVar(&u.Username, "username", "", "login name")
	flag.StringVar(&u.Email, "email", "", "email address")
	flag.StringVar(&u.Password, "password", "", "initial password")
	flag.StringVar(&u.Role, "role", string(models.RoleStudent), "admin, teacher or student")
	flag.Parse()

	if err := validation.Struct(u); err != nil {
		fmt.Printf("Invalid user: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	// Initialize database connection
	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	user := &models.User{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
		Role:     models.Role(u.Role),
	}
	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (%s, %s)\n", user.Username, user.Email, user.Role)
}
