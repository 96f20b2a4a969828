package models

import "time"

// Course is a subject students can be enrolled in.
type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Coefficient float64   `json:"coefficient"`
	CourseHours int       `json:"course_hours"`
	CoursePrice float64   `json:"course_price"`
	CreatedAt   time.Time `json:"created_at"`
}
