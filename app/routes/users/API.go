package users

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/flash"
	"school-management/app/models"
	"school-management/app/routes/auth"
	"school-management/app/routes/dashboard"
	"school-management/app/routes/shared"
	"school-management/app/validation"
)

const dashboardPath = "/admin/dashboard"

type AddUserRequest struct {
	Username string `form:"username" validate:"required,min=3,max=50"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
	Role     string `form:"role" validate:"required,oneof=admin teacher student"`
}

type EditRoleRequest struct {
	UserID int64  `form:"user_id" validate:"required,gt=0"`
	Role   string `form:"role" validate:"required,oneof=admin teacher student"`
}

func ShowAllUsers(c *fiber.Ctx) error {
	users, err := database.GetAllUsers(config.GetDB())
	if err != nil {
		log.Printf("Error showing all users: %v", err)
		return shared.Page(c, fiber.StatusInternalServerError, "admin/users", "Users", "users", fiber.Map{
			"Error": "Server error while loading users.",
		})
	}
	return shared.Page(c, fiber.StatusOK, "admin/users", "Users", "users", fiber.Map{
		"Users": users,
		"Roles": models.AllRoles,
	})
}

func renderAddForm(c *fiber.Ctx, status int, errMsg string, req AddUserRequest) error {
	return shared.Page(c, status, "admin/users_add", "Add user", "users", fiber.Map{
		"Error": errMsg,
		"Form":  req,
		"Roles": models.AllRoles,
	})
}

func ShowAddUserForm(c *fiber.Ctx) error {
	return renderAddForm(c, fiber.StatusOK, "", AddUserRequest{Role: string(models.RoleStudent)})
}

func AddUser(c *fiber.Ctx) error {
	var req AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return renderAddForm(c, fiber.StatusBadRequest, "Invalid request", req)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.Struct(req); err != nil {
		return renderAddForm(c, fiber.StatusBadRequest, err.Error(), req)
	}

	db := config.GetDB()
	if _, err := database.GetUserByUsername(db, req.Username); err == nil {
		return renderAddForm(c, fiber.StatusBadRequest, "Username or email already used.", req)
	} else if !errors.Is(err, database.ErrNotFound) {
		log.Printf("Error checking username %q: %v", req.Username, err)
		return renderAddForm(c, fiber.StatusInternalServerError, "Server error while adding user.", req)
	}
	if _, err := database.GetUserByEmail(db, req.Email); err == nil {
		return renderAddForm(c, fiber.StatusBadRequest, "Username or email already used.", req)
	} else if !errors.Is(err, database.ErrNotFound) {
		log.Printf("Error checking email %q: %v", req.Email, err)
		return renderAddForm(c, fiber.StatusInternalServerError, "Server error while adding user.", req)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	}
	if err := database.CreateUser(db, user); err != nil {
		if database.IsUniqueViolation(err) {
			return renderAddForm(c, fiber.StatusBadRequest, "Username or email already used.", req)
		}
		log.Printf("Error adding user %q: %v", req.Username, err)
		return renderAddForm(c, fiber.StatusInternalServerError, "Server error while adding user.", req)
	}

	return flash.Redirect(c, dashboardPath, flash.Success, "User added with success.")
}

// ShowUserByUsername renders the dashboard with the role form filled in for
// the requested user.
func ShowUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	user, err := database.GetUserByUsername(config.GetDB(), username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return flash.Redirect(c, dashboardPath, flash.Error, "User not found.")
		}
		log.Printf("Error showing user %q: %v", username, err)
		return flash.Redirect(c, dashboardPath, flash.Error, "Server error while loading user.")
	}
	return dashboard.Render(c, fiber.StatusOK, fiber.Map{"UserToEdit": user})
}

func EditUserRole(c *fiber.Ctx) error {
	var req EditRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return flash.Redirect(c, dashboardPath, flash.Error, "User ID and new role are required.")
	}
	if err := validation.Struct(req); err != nil {
		return flash.Redirect(c, dashboardPath, flash.Error, err.Error())
	}

	ok, err := database.UpdateUserRole(config.GetDB(), req.UserID, models.Role(req.Role))
	switch {
	case err != nil:
		log.Printf("Error editing role of user %d: %v", req.UserID, err)
		return flash.Redirect(c, dashboardPath, flash.Error, "Server error while updating user role.")
	case !ok:
		return flash.Redirect(c, dashboardPath, flash.Error, "Error updating user role.")
	}
	return flash.Redirect(c, dashboardPath, flash.Success, "User role updated successfully.")
}

func DeleteUser(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, dashboardPath, flash.Error, "Invalid user ID.")
	}
	if me := auth.CurrentUser(c); me != nil && me.ID == id {
		return flash.Redirect(c, dashboardPath, flash.Error, "You cannot delete your own account.")
	}

	ok, err := database.DeleteUser(config.GetDB(), id)
	switch {
	case err != nil:
		log.Printf("Error deleting user %d: %v", id, err)
		return flash.Redirect(c, dashboardPath, flash.Error, "Server error while deleting user.")
	case !ok:
		return flash.Redirect(c, dashboardPath, flash.Error, "Error deleting user.")
	}
	return flash.Redirect(c, dashboardPath, flash.Success, "User deleted with success.")
}
