package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"school-management/app/models"
)

const prodID = "-//school-management//calendar//EN"

// EncodeICS renders events as an iCalendar feed. Events without a time are
// exported as all-day events; timed events are read in loc. Undated events
// are skipped.
func EncodeICS(name string, events []models.Event, loc *time.Location, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetXWRCalName(name)

	for _, e := range events {
		if e.Date.IsZero() {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("event-%d@school-management", e.ID))
		ev.SetDtStampTime(now)
		if !e.CreatedAt.IsZero() {
			ev.SetCreatedTime(e.CreatedAt)
		}
		if !e.UpdatedAt.IsZero() {
			ev.SetModifiedAt(e.UpdatedAt)
		}

		if start, ok := eventStart(e, loc); ok {
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(time.Hour))
		} else {
			day := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}

		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Status != "" {
			ev.SetProperty(ical.ComponentPropertyCategories, e.Status)
		}
	}
	return cal.Serialize()
}

// eventStart combines the event date with its HH:MM time, if it has one.
func eventStart(e models.Event, loc *time.Location) (time.Time, bool) {
	hm := FormatTime(e.Time)
	if len(hm) != 5 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", DateKey(e.Date)+" "+hm, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
