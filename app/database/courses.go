package database

import (
	"database/sql"

	"school-management/app/models"
)

const courseColumns = `id, title, description, coefficient, course_hours, course_price, created_at`

func scanCourse(row interface{ Scan(...any) error }) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Coefficient, &c.CourseHours, &c.CoursePrice, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCourse adds a new course to the database
func CreateCourse(db *sql.DB, course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, coefficient, course_hours, course_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	return db.QueryRow(query,
		course.Title, course.Description, course.Coefficient, course.CourseHours, course.CoursePrice,
	).Scan(&course.ID, &course.CreatedAt)
}

// UpdateCourse updates an existing course
func UpdateCourse(db *sql.DB, course *models.Course) (bool, error) {
	query := `
		UPDATE courses
		SET title = $1, description = $2, coefficient = $3, course_hours = $4, course_price = $5
		WHERE id = $6
	`
	return affected(db.Exec(query,
		course.Title, course.Description, course.Coefficient, course.CourseHours, course.CoursePrice, course.ID,
	))
}

func DeleteCourse(db *sql.DB, id int64) (bool, error) {
	return affected(db.Exec(`DELETE FROM courses WHERE id = $1`, id))
}

func GetAllCourses(db *sql.DB) ([]*models.Course, error) {
	rows, err := db.Query(`SELECT ` + courseColumns + ` FROM courses ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func GetCourseByTitle(db *sql.DB, title string) (*models.Course, error) {
	c, err := scanCourse(db.QueryRow(`SELECT `+courseColumns+` FROM courses WHERE title = $1`, title))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func GetCourseByID(db *sql.DB, id int64) (*models.Course, error) {
	c, err := scanCourse(db.QueryRow(`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}
