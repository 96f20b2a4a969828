package database

import (
	"database/sql"

	"school-management/app/models"
)

const enrolmentColumns = `id, student_username, course_title, enroll_status, enroll_date`

func queryEnrolments(db *sql.DB, query string, args ...any) ([]*models.Enrolment, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrolments []*models.Enrolment
	for rows.Next() {
		e := &models.Enrolment{}
		var status string
		if err := rows.Scan(&e.ID, &e.StudentUsername, &e.CourseTitle, &status, &e.EnrollDate); err != nil {
			return nil, err
		}
		e.Status = models.EnrolmentStatus(status)
		enrolments = append(enrolments, e)
	}
	return enrolments, rows.Err()
}

func CreateEnrolment(db *sql.DB, e *models.Enrolment) error {
	query := `INSERT INTO enrolments (student_username, course_title, enroll_status, enroll_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	return db.QueryRow(query, e.StudentUsername, e.CourseTitle, string(e.Status), e.EnrollDate).Scan(&e.ID)
}

func UpdateEnrolment(db *sql.DB, e *models.Enrolment) (bool, error) {
	query := `UPDATE enrolments
			  SET student_username = $1, course_title = $2, enroll_status = $3, enroll_date = $4
			  WHERE id = $5`
	return affected(db.Exec(query, e.StudentUsername, e.CourseTitle, string(e.Status), e.EnrollDate, e.ID))
}

func DeleteEnrolment(db *sql.DB, id int64) (bool, error) {
	return affected(db.Exec(`DELETE FROM enrolments WHERE id = $1`, id))
}

func GetAllEnrolments(db *sql.DB) ([]*models.Enrolment, error) {
	return queryEnrolments(db, `SELECT `+enrolmentColumns+` FROM enrolments ORDER BY enroll_date DESC`)
}

func GetEnrolmentsByStudent(db *sql.DB, username string) ([]*models.Enrolment, error) {
	return queryEnrolments(db,
		`SELECT `+enrolmentColumns+` FROM enrolments WHERE student_username = $1 ORDER BY enroll_date DESC`, username)
}

func GetEnrolmentsByCourse(db *sql.DB, title string) ([]*models.Enrolment, error) {
	return queryEnrolments(db,
		`SELECT `+enrolmentColumns+` FROM enrolments WHERE course_title = $1 ORDER BY enroll_date DESC`, title)
}

// GetEnrolmentPageData loads the students, courses, enrolments and payments
// listed on the enrolment admin page.
func GetEnrolmentPageData(db *sql.DB) (*models.EnrolmentPageData, error) {
	students, err := GetUsersByRole(db, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	courses, err := GetAllCourses(db)
	if err != nil {
		return nil, err
	}
	enrolments, err := GetAllEnrolments(db)
	if err != nil {
		return nil, err
	}
	payments, err := GetAllPayments(db)
	if err != nil {
		return nil, err
	}
	return &models.EnrolmentPageData{
		Students:   students,
		Courses:    courses,
		Enrolments: enrolments,
		Payments:   payments,
	}, nil
}
