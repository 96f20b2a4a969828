package database

import (
	"database/sql"
	"time"

	"school-management/app/models"
)

const eventColumns = `id, title, description, date, time, status, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	var description, clock, status sql.NullString
	var date sql.NullTime
	if err := row.Scan(
		&e.ID, &e.Title, &description, &date, &clock, &status, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Description = description.String
	e.Time = clock.String
	e.Status = status.String
	if date.Valid {
		e.Date = date.Time
	}
	return &e, nil
}

func queryEvents(db *sql.DB, query string, args ...any) ([]models.Event, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// CreateEvent adds a new event to the database
func CreateEvent(db *sql.DB, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, date, time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(
		query,
		event.Title,
		nullString(event.Description),
		nullDate(event.Date),
		nullString(event.Time),
		nullString(event.Status),
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

// GetEvents retrieves all events ordered by date then time
func GetEvents(db *sql.DB) ([]models.Event, error) {
	return queryEvents(db, `SELECT `+eventColumns+` FROM events ORDER BY date ASC, time ASC NULLS FIRST`)
}

// GetEventsInRange retrieves events dated within [start, end), ordered by date then time
func GetEventsInRange(db *sql.DB, start, end time.Time) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC, time ASC NULLS FIRST`
	return queryEvents(db, query, start, end)
}

// GetUpcomingEvents returns up to limit events dated on or after from
func GetUpcomingEvents(db *sql.DB, from time.Time, limit int) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE date >= $1
		ORDER BY date ASC, time ASC NULLS FIRST
		LIMIT $2`
	return queryEvents(db, query, from, limit)
}

func GetEventByID(db *sql.DB, id int64) (*models.Event, error) {
	e, err := scanEvent(db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// UpdateEvent updates an existing event
func UpdateEvent(db *sql.DB, event *models.Event) (bool, error) {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, time = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	return affected(db.Exec(query,
		event.Title, nullString(event.Description), nullDate(event.Date),
		nullString(event.Time), nullString(event.Status), event.ID,
	))
}

// DeleteEvent deletes an event by ID
func DeleteEvent(db *sql.DB, id int64) (bool, error) {
	return affected(db.Exec(`DELETE FROM events WHERE id = $1`, id))
}
