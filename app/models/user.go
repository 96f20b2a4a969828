package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username" validate:"required,min=3,max=50"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionUser is the subset of User kept in the login session.
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) SessionUser() SessionUser {
	return SessionUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents  int
	TotalTeachers  int
	TotalCourses   int
	UpcomingEvents int
	TotalPaid      float64
}
