package models

import "time"

// Payment represents a payment made by a student for a course.
type Payment struct {
	ID              int64         `json:"id"`
	StudentUsername string        `json:"student_username"`
	CourseTitle     string        `json:"course_title"`
	Amount          float64       `json:"amount"`
	Currency        string        `json:"currency"`
	Method          PaymentMethod `json:"method"`
	PaymentDate     time.Time     `json:"payment_date"`
	Status          PaymentStatus `json:"status"`
	Reference       string        `json:"reference"`
	Note            string        `json:"note"`
}

// StudentBalance sums what a student owes for active enrolments against what was paid.
type StudentBalance struct {
	StudentUsername string  `json:"student_username"`
	Due             float64 `json:"due"`
	Paid            float64 `json:"paid"`
	Balance         float64 `json:"balance"`
}

// EnrolmentPageData is everything the enrolment admin page lists.
type EnrolmentPageData struct {
	Students   []*User
	Courses    []*Course
	Enrolments []*Enrolment
	Payments   []*Payment
}
