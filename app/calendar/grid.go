package calendar

import (
	"fmt"
	"time"
)

// maxWeeks is enough rows for any month in a Monday-first grid.
const maxWeeks = 6

// Day is one cell of the month grid.
type Day struct {
	Day        int
	Date       time.Time
	OtherMonth bool
	Events     []DayEvent
}

func (d Day) HasEvents() bool { return len(d.Events) > 0 }

func (d Day) Count() int { return len(d.Events) }

// Week is a grid row, Monday through Sunday.
type Week [7]Day

// Build lays out the month as Monday-first weeks, padding with days of the
// adjacent months. Months outside 1..12 roll over into neighbouring years.
func Build(year int, month time.Month, byDate map[string][]DayEvent) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	target := first.Month()

	offset := mondayIndex(first.Weekday())
	cursor := first.AddDate(0, 0, -offset)

	weeks := make([]Week, 0, maxWeeks)
	for w := 0; w < maxWeeks; w++ {
		var week Week
		for i := range week {
			week[i] = Day{
				Day:        cursor.Day(),
				Date:       cursor,
				OtherMonth: cursor.Month() != target,
				Events:     byDate[DateKey(cursor)],
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)

		if cursor.After(last) && mondayIndex(cursor.Weekday()) == 0 {
			break
		}
	}
	return weeks
}

// mondayIndex maps Sunday=0..Saturday=6 to Monday=0..Sunday=6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthLabel returns a heading such as "March 2026".
func MonthLabel(year int, month time.Month) string {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return fmt.Sprintf("%s %d", monthNames[int(t.Month())-1], t.Year())
}

// MonthRange returns the half-open range [first of month, first of next month).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
