package dashboard

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/models"
	"school-management/app/routes/shared"
)

const upcomingLimit = 5

func SetupDashboardRoutes(admin fiber.Router) {
	admin.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/admin/dashboard")
	})
	admin.Get("/dashboard", GetDashboard)
	admin.Get("/dashboard/stats", GetDashboardStatsAPI)
}

// GetDashboard handles dashboard page
func GetDashboard(c *fiber.Ctx) error {
	return Render(c, fiber.StatusOK, nil)
}

// Render shows the dashboard, merging extra into the page data. The users
// routes use it to show an edit form on top of the user list.
func Render(c *fiber.Ctx, status int, extra fiber.Map) error {
	db := config.GetDB()
	data := fiber.Map{"Roles": models.AllRoles}

	users, err := database.GetAllUsers(db)
	if err != nil {
		log.Printf("Error loading users for dashboard: %v", err)
		status = fiber.StatusInternalServerError
		data["Error"] = "Server error while loading users."
	}
	data["Users"] = users

	if stats, err := database.GetDashboardStats(db, config.Now()); err == nil {
		data["Stats"] = stats
	} else {
		log.Printf("Error loading dashboard stats: %v", err)
	}

	if events, err := database.GetUpcomingEvents(db, config.Now(), upcomingLimit); err == nil {
		data["Events"] = events
	} else {
		log.Printf("Error loading upcoming events: %v", err)
	}

	for k, v := range extra {
		data[k] = v
	}
	return shared.Page(c, status, "admin/dashboard", "Dashboard", "dashboard", data)
}

// GetDashboardStatsAPI returns dashboard statistics as JSON
func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB(), config.Now())
	if err != nil {
		log.Printf("Error loading dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch dashboard statistics",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
