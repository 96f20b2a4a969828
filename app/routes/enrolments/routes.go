package enrolments

import (
	"github.com/gofiber/fiber/v2"
)

// SetupEnrolmentsRoutes registers the enrolment pages under /admin.
func SetupEnrolmentsRoutes(admin fiber.Router) {
	admin.Get("/enrolment", ShowEnrolmentPage)
	admin.Get("/enrolment/by-username/:username", ShowEnrolmentsByUsername)
	admin.Get("/enrolment/by-course/:title", ShowEnrolmentsByCourse)
	admin.Post("/enrolment/add", AddEnrolment)
	admin.Post("/enrolment/edit/:id", EditEnrolment)
	admin.Post("/enrolment/delete/:id", DeleteEnrolment)

	admin.Get("/students/total-amount/:username", GetStudentTotalAmountAPI)
}
