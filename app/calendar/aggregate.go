package calendar

import (
	"time"

	"school-management/app/models"
)

const dateLayout = "2006-01-02"

// DayEvent is an event with its date and time in the canonical display forms.
type DayEvent struct {
	models.Event
	DateYMD string
	TimeHM  string
}

// DateKey formats t as YYYY-MM-DD. The zero time has no key.
func DateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// ParseDate reads a YYYY-MM-DD date, tolerating a trailing time part as
// produced by some drivers ("2026-03-15T00:00:00Z"). It returns the zero
// time when s is not a date.
func ParseDate(s string) time.Time {
	if len(s) < len(dateLayout) {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatTime trims an HH:MM:SS time to HH:MM. Shorter values pass through.
func FormatTime(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

// NewDayEvent attaches the formatted date and time to e.
func NewDayEvent(e models.Event) DayEvent {
	return DayEvent{
		Event:   e,
		DateYMD: DateKey(e.Date),
		TimeHM:  FormatTime(e.Time),
	}
}

// Aggregate groups events by DateKey, keeping their input order within a day.
// Events without a usable date are dropped.
func Aggregate(events []models.Event) map[string][]DayEvent {
	byDate := make(map[string][]DayEvent)
	for _, e := range events {
		de := NewDayEvent(e)
		if de.DateYMD == "" {
			continue
		}
		byDate[de.DateYMD] = append(byDate[de.DateYMD], de)
	}
	return byDate
}

// FormatEvents returns every event in display form, including undated ones.
func FormatEvents(events []models.Event) []DayEvent {
	out := make([]DayEvent, 0, len(events))
	for _, e := range events {
		out = append(out, NewDayEvent(e))
	}
	return out
}
