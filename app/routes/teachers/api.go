package teachers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"school-management/app/calendar"
	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/routes/events"
	"school-management/app/routes/shared"
)

const upcomingLimit = 10

// TeacherDashboard lists the courses and the month's events.
func TeacherDashboard(c *fiber.Ctx) error {
	year, month, err := calendar.ParseMonthParam(c.Query("month"), config.Now())
	if err != nil {
		return c.Redirect("/teacher")
	}
	db := config.GetDB()

	data, err := events.MonthView(db, year, month)
	if err != nil {
		log.Printf("Error loading teacher calendar: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load the calendar")
	}

	courses, err := database.GetAllCourses(db)
	if err != nil {
		log.Printf("Error loading courses for teacher: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load courses")
	}
	data["Courses"] = courses

	upcoming, err := database.GetUpcomingEvents(db, config.Now(), upcomingLimit)
	if err != nil {
		log.Printf("Error loading upcoming events for teacher: %v", err)
	}
	data["Upcoming"] = calendar.FormatEvents(upcoming)

	return shared.Page(c, fiber.StatusOK, "teacher/dashboard", "Teacher", "teacher", data)
}
