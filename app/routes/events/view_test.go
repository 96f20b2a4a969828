package events

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-management/app/calendar"
)

var eventCols = []string{"id", "title", "description", "date", "time", "status", "created_at", "updated_at"}

func TestMonthView(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE date >= $1 AND date < $2`)).
		WithArgs(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(1, "Assembly", nil, day, "09:00:00", nil, day, day).
			AddRow(2, "Sports day", nil, day, nil, nil, day, day))

	view, err := MonthView(db, 2026, time.March)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "March 2026", view["MonthLabel"])
	assert.Equal(t, "2026-03", view["SelectedMonth"])
	assert.Equal(t, "2026-02", view["PrevMonth"])
	assert.Equal(t, "2026-04", view["NextMonth"])

	weeks := view["Weeks"].([]calendar.Week)
	require.Len(t, weeks, 6)
	// 2026-03-15 is the Sunday of the third row
	cell := weeks[2][6]
	assert.Equal(t, 15, cell.Day)
	require.Equal(t, 2, cell.Count())
	assert.Equal(t, "09:00", cell.Events[0].TimeHM)
	assert.Equal(t, "", cell.Events[1].TimeHM)
}

func TestMonthView_yearBoundary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM events`)).
		WithArgs(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows(eventCols))

	view, err := MonthView(db, 2026, time.December)
	require.NoError(t, err)
	assert.Equal(t, "2026-11", view["PrevMonth"])
	assert.Equal(t, "2027-01", view["NextMonth"])
}

func TestMonthView_queryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM events`)).WillReturnError(boom)

	_, err = MonthView(db, 2026, time.March)
	assert.ErrorIs(t, err, boom)
}
