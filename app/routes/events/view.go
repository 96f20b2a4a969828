package events

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-management/app/calendar"
	"school-management/app/config"
	"school-management/app/database"
)

// MonthView loads the events of one month and lays them out as a grid. The
// returned map is ready to be merged into page data.
func MonthView(db *sql.DB, year int, month time.Month) (fiber.Map, error) {
	start, end := calendar.MonthRange(year, month)
	events, err := database.GetEventsInRange(db, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading events of %s: %w", calendar.MonthParam(year, month), err)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev, next := first.AddDate(0, -1, 0), first.AddDate(0, 1, 0)
	return fiber.Map{
		"Weeks":         calendar.Build(year, month, calendar.Aggregate(events)),
		"MonthLabel":    calendar.MonthLabel(year, month),
		"SelectedMonth": calendar.MonthParam(year, month),
		"PrevMonth":     calendar.MonthParam(prev.Year(), prev.Month()),
		"NextMonth":     calendar.MonthParam(next.Year(), next.Month()),
		"Events":        calendar.FormatEvents(events),
		"Today":         calendar.DateKey(config.Now()),
		"WeekDays":      weekDays,
	}, nil
}

var weekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
