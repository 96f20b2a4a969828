package courses

import (
	"github.com/gofiber/fiber/v2"
)

// SetupCoursesRoutes registers the course management pages under /admin.
func SetupCoursesRoutes(admin fiber.Router) {
	admin.Get("/courses", ShowAllCourses)
	admin.Post("/courses/add", AddCourse)
	admin.Post("/courses/edit/:id", EditCourse)
	admin.Post("/courses/delete/:id", DeleteCourse)
	admin.Get("/courses/:title", ShowCourseByTitle)
}
