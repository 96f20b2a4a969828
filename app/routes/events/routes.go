package events

import (
	"github.com/gofiber/fiber/v2"
)

// SetupEventsRoutes registers the admin calendar under /admin.
func SetupEventsRoutes(admin fiber.Router) {
	admin.Get("/calendar", ShowCalendar)
	admin.Get("/calendar.ics", ExportCalendar)
	admin.Get("/calendar/edit/:id", ShowEventToEdit)
	admin.Post("/calendar/add", AddEvent)
	admin.Post("/calendar/edit/:id", EditEvent)
	admin.Post("/calendar/delete/:id", DeleteEvent)
}
