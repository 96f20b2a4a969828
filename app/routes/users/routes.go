package users

import (
	"github.com/gofiber/fiber/v2"
)

// SetupUsersRoutes registers the user management pages under /admin.
func SetupUsersRoutes(admin fiber.Router) {
	admin.Get("/users", ShowAllUsers)
	admin.Get("/users/add", ShowAddUserForm)
	admin.Post("/users/add", AddUser)
	admin.Post("/users/edit-role", EditUserRole)
	admin.Post("/users/delete/:id", DeleteUser)
	admin.Get("/users/:username", ShowUserByUsername)
}
