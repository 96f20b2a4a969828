package calendar

import (
	"errors"
	"strconv"
	"time"
)

var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM with a month between 01 and 12")

// ParseMonthParam validates a ?month=YYYY-MM query value. An empty value
// selects the month of now.
func ParseMonthParam(param string, now time.Time) (int, time.Month, error) {
	if param == "" {
		return now.Year(), now.Month(), nil
	}
	if len(param) != 7 || param[4] != '-' || !digits(param[:4]) || !digits(param[5:]) {
		return 0, 0, ErrInvalidMonth
	}
	year, err := strconv.Atoi(param[:4])
	if err != nil || year < 1 {
		return 0, 0, ErrInvalidMonth
	}
	month, err := strconv.Atoi(param[5:])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrInvalidMonth
	}
	return year, time.Month(month), nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MonthParam is the inverse of ParseMonthParam.
func MonthParam(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
