package students

import (
	"github.com/gofiber/fiber/v2"

	"school-management/app/models"
	"school-management/app/routes/auth"
)

// SetupStudentsRoutes registers the student portal.
func SetupStudentsRoutes(app *fiber.App) {
	student := app.Group("/student", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleStudent))
	student.Get("/", StudentDashboard)
	student.Get("/balance", GetBalanceAPI)
}
