package models

import "time"

// Enrolment links a student (by username) to a course (by title).
type Enrolment struct {
	ID              int64           `json:"id"`
	StudentUsername string          `json:"student_username"`
	CourseTitle     string          `json:"course_title"`
	Status          EnrolmentStatus `json:"enroll_status"`
	EnrollDate      time.Time       `json:"enroll_date"`
}
