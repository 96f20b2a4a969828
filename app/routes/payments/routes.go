package payments

import (
	"github.com/gofiber/fiber/v2"
)

// SetupPaymentsRoutes registers the payment pages under /admin. Payments are
// listed on the enrolment page.
func SetupPaymentsRoutes(admin fiber.Router) {
	admin.Get("/payments/by-username/:username", ShowPaymentsByUsername)
	admin.Get("/payments/by-course/:title", ShowPaymentsByCourse)
	admin.Post("/payments/add", AddPayment)
	admin.Post("/payments/edit/:id", EditPayment)
	admin.Post("/payments/delete/:id", DeletePayment)
}
