package teachers

import (
	"github.com/gofiber/fiber/v2"

	"school-management/app/models"
	"school-management/app/routes/auth"
)

// SetupTeachersRoutes registers the teacher portal.
func SetupTeachersRoutes(app *fiber.App) {
	teacher := app.Group("/teacher", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleTeacher))
	teacher.Get("/", TeacherDashboard)
}
