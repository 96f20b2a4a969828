package models

import "time"

// Event represents a calendar event
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"` // zero when missing or unparseable
	Time        string    `json:"time"` // HH:MM[:SS], empty when the event has no time
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
