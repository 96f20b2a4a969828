package events

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-management/app/calendar"
	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/flash"
	"school-management/app/models"
	"school-management/app/routes/shared"
	"school-management/app/validation"
)

const calendarPath = "/admin/calendar"

type EventRequest struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description"`
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	Time        string `form:"time" validate:"omitempty,datetime=15:04"`
	Status      string `form:"status" validate:"max=50"`
}

func monthPath(t time.Time) string {
	if t.IsZero() {
		return calendarPath
	}
	return calendarPath + "?month=" + calendar.MonthParam(t.Year(), t.Month())
}

func render(c *fiber.Ctx, year int, month time.Month, extra fiber.Map) error {
	view, err := MonthView(config.GetDB(), year, month)
	if err != nil {
		log.Printf("Error showing calendar: %v", err)
		return shared.Page(c, fiber.StatusInternalServerError, "admin/calendar", "Calendar", "calendar", fiber.Map{
			"Error":         "Server error while loading events.",
			"MonthLabel":    calendar.MonthLabel(year, month),
			"SelectedMonth": calendar.MonthParam(year, month),
		})
	}
	for k, v := range extra {
		view[k] = v
	}
	return shared.Page(c, fiber.StatusOK, "admin/calendar", "Calendar", "calendar", view)
}

// ShowCalendar renders the month selected by ?month=YYYY-MM, the current
// month when absent.
func ShowCalendar(c *fiber.Ctx) error {
	year, month, err := calendar.ParseMonthParam(c.Query("month"), config.Now())
	if err != nil {
		return flash.Redirect(c, calendarPath, flash.Error, "Invalid month.")
	}
	return render(c, year, month, nil)
}

// ShowEventToEdit renders the calendar on the event's month with its edit
// form open.
func ShowEventToEdit(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, calendarPath, flash.Error, "Invalid event ID.")
	}
	event, err := database.GetEventByID(config.GetDB(), id)
	if errors.Is(err, database.ErrNotFound) {
		return flash.Redirect(c, calendarPath, flash.Error, "Event not found.")
	}
	if err != nil {
		log.Printf("Error loading event %d: %v", id, err)
		return flash.Redirect(c, calendarPath, flash.Error, "Server error while loading event.")
	}

	year, month := event.Date.Year(), event.Date.Month()
	if event.Date.IsZero() {
		now := config.Now()
		year, month = now.Year(), now.Month()
	}
	return render(c, year, month, fiber.Map{
		"EventToEdit": calendar.NewDayEvent(*event),
	})
}

func parse(c *fiber.Ctx) (*models.Event, error) {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, shared.ErrInvalidForm
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Time = calendar.FormatTime(strings.TrimSpace(req.Time))
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		Time:        req.Time,
		Status:      strings.TrimSpace(req.Status),
	}, nil
}

func AddEvent(c *fiber.Ctx) error {
	e, err := parse(c)
	if err != nil {
		return flash.Redirect(c, calendarPath, flash.Error, err.Error())
	}
	if err := database.CreateEvent(config.GetDB(), e); err != nil {
		log.Printf("Error adding event %q: %v", e.Title, err)
		return flash.Redirect(c, monthPath(e.Date), flash.Error, "Server error while adding event.")
	}
	return flash.Redirect(c, monthPath(e.Date), flash.Success, "Event added with success.")
}

func EditEvent(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, calendarPath, flash.Error, "Invalid event ID.")
	}
	e, err := parse(c)
	if err != nil {
		return flash.Redirect(c, fmt.Sprintf("%s/edit/%d", calendarPath, id), flash.Error, err.Error())
	}
	e.ID = id

	ok, err := database.UpdateEvent(config.GetDB(), e)
	switch {
	case err != nil:
		log.Printf("Error editing event %d: %v", id, err)
		return flash.Redirect(c, monthPath(e.Date), flash.Error, "Server error while updating event.")
	case !ok:
		return flash.Redirect(c, monthPath(e.Date), flash.Error, "Event not found.")
	}
	return flash.Redirect(c, monthPath(e.Date), flash.Success, "Event updated with success.")
}

func DeleteEvent(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, calendarPath, flash.Error, "Invalid event ID.")
	}
	db := config.GetDB()

	// the redirect goes back to the month the event was in
	var date time.Time
	event, err := database.GetEventByID(db, id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return flash.Redirect(c, calendarPath, flash.Error, "Event not found.")
	case err != nil:
		log.Printf("Error loading event %d before delete: %v", id, err)
	default:
		date = event.Date
	}

	ok, err := database.DeleteEvent(db, id)
	switch {
	case err != nil:
		log.Printf("Error deleting event %d: %v", id, err)
		return flash.Redirect(c, monthPath(date), flash.Error, "Server error while deleting event.")
	case !ok:
		return flash.Redirect(c, monthPath(date), flash.Error, "Event not found.")
	}
	return flash.Redirect(c, monthPath(date), flash.Success, "Event deleted with success.")
}

// ExportCalendar serves every dated event as an iCalendar feed.
func ExportCalendar(c *fiber.Ctx) error {
	events, err := database.GetEvents(config.GetDB())
	if err != nil {
		log.Printf("Error exporting calendar: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export calendar")
	}
	now := config.Now()
	body := calendar.EncodeICS("School Management", events, now.Location(), now)

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="school-calendar.ics"`)
	return c.SendString(body)
}
