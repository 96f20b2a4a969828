package students

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"school-management/app/calendar"
	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/routes/auth"
	"school-management/app/routes/events"
	"school-management/app/routes/shared"
)

// StudentDashboard shows the logged-in student's enrolments, payments and
// balance next to the month's events.
func StudentDashboard(c *fiber.Ctx) error {
	year, month, err := calendar.ParseMonthParam(c.Query("month"), config.Now())
	if err != nil {
		return c.Redirect("/student")
	}
	user := auth.CurrentUser(c)
	db := config.GetDB()

	data, err := events.MonthView(db, year, month)
	if err != nil {
		log.Printf("Error loading student calendar: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load the calendar")
	}

	enrolments, err := database.GetEnrolmentsByStudent(db, user.Username)
	if err != nil {
		log.Printf("Error loading enrolments of %q: %v", user.Username, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load enrolments")
	}
	payments, err := database.GetPaymentsByStudent(db, user.Username)
	if err != nil {
		log.Printf("Error loading payments of %q: %v", user.Username, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payments")
	}
	balance, err := database.GetStudentBalance(db, user.Username)
	if err != nil {
		log.Printf("Error computing balance of %q: %v", user.Username, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute balance")
	}

	data["Enrolments"] = enrolments
	data["Payments"] = payments
	data["Balance"] = balance
	return shared.Page(c, fiber.StatusOK, "student/dashboard", "My courses", "student", data)
}

// GetBalanceAPI returns the logged-in student's balance as JSON
func GetBalanceAPI(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	balance, err := database.GetStudentBalance(config.GetDB(), user.Username)
	if err != nil {
		log.Printf("Error computing balance of %q: %v", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to compute balance",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"balance": balance,
	})
}
