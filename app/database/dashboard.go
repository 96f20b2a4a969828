package database

import (
	"database/sql"
	"time"

	"school-management/app/models"
)

// GetDashboardStats returns statistics for the admin dashboard
func GetDashboardStats(db *sql.DB, today time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	// 1. Users by role
	err := db.QueryRow(`
		SELECT
			COUNT(*) FILTER (WHERE role = 'student'),
			COUNT(*) FILTER (WHERE role = 'teacher')
		FROM users
	`).Scan(&stats.TotalStudents, &stats.TotalTeachers)
	if err != nil {
		return nil, err
	}

	// 2. Courses
	err = db.QueryRow("SELECT COUNT(*) FROM courses").Scan(&stats.TotalCourses)
	if err != nil {
		return nil, err
	}

	// 3. Upcoming events
	err = db.QueryRow("SELECT COUNT(*) FROM events WHERE date >= $1", today).Scan(&stats.UpcomingEvents)
	if err != nil {
		return nil, err
	}

	// 4. Completed payments
	err = db.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed'").Scan(&stats.TotalPaid)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
