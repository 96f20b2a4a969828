package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/flash"
	"school-management/app/models"
	"school-management/app/validation"
)

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegisterRequest struct {
	Username        string `form:"username" validate:"required,min=3,max=50"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func LoginAPI(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return renderLogin(c, fiber.StatusBadRequest, "Invalid request")
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := validation.Struct(req); err != nil {
		return renderLogin(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := database.GetUserByUsername(config.GetDB(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return renderLogin(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		log.Printf("Error looking up user %q: %v", req.Username, err)
		return renderLogin(c, fiber.StatusInternalServerError, "Server error")
	}

	if !database.CheckPassword(req.Password, user.Password) {
		return renderLogin(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	if err := Login(c, user); err != nil {
		log.Printf("Error creating session for %q: %v", user.Username, err)
		return renderLogin(c, fiber.StatusInternalServerError, "Server error")
	}

	log.Printf("Login successful: user=%s role=%s", user.Username, user.Role)
	return c.Redirect(user.Role.HomePath())
}

func LogoutAPI(c *fiber.Ctx) error {
	sess, err := storeFor(c).Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Printf("Error destroying session: %v", err)
		}
	}
	return c.Redirect("/login")
}

// registrationOpen reports whether the first account may still be created.
func registrationOpen() (bool, error) {
	count, err := database.CountUsers(config.GetDB())
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func ShowRegisterPage(c *fiber.Ctx) error {
	open, err := registrationOpen()
	if err != nil {
		log.Printf("Error counting users: %v", err)
		return fiber.ErrInternalServerError
	}
	if !open {
		return c.Redirect("/login")
	}
	return renderRegister(c, fiber.StatusOK, "")
}

// RegisterAPI creates the first account, which is always an administrator.
func RegisterAPI(c *fiber.Ctx) error {
	open, err := registrationOpen()
	if err != nil {
		log.Printf("Error counting users: %v", err)
		return renderRegister(c, fiber.StatusInternalServerError, "Server error")
	}
	if !open {
		return c.Redirect("/login")
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return renderRegister(c, fiber.StatusBadRequest, "Invalid request")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.Struct(req); err != nil {
		return renderRegister(c, fiber.StatusBadRequest, err.Error())
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleAdmin,
	}
	if err := database.CreateUser(config.GetDB(), user); err != nil {
		log.Printf("Error creating admin %q: %v", req.Username, err)
		return renderRegister(c, fiber.StatusInternalServerError, "Server error")
	}

	return flash.Redirect(c, "/login", flash.Success, "Administrator account created. You can now log in.")
}
