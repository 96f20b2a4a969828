package database

import (
	"database/sql"
	"fmt"

	"school-management/app/models"
)

const paymentColumns = `id, student_username, course_title, amount, currency, method, payment_date, status, reference, note`

func queryPayments(db *sql.DB, query string, args ...any) ([]*models.Payment, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var method, status string
		err := rows.Scan(
			&p.ID, &p.StudentUsername, &p.CourseTitle, &p.Amount, &p.Currency,
			&method, &p.PaymentDate, &status, &p.Reference, &p.Note,
		)
		if err != nil {
			return nil, err
		}
		p.Method = models.PaymentMethod(method)
		p.Status = models.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func CreatePayment(db *sql.DB, p *models.Payment) error {
	query := `INSERT INTO payments (student_username, course_title, amount, currency, method, payment_date, status, reference, note)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	return db.QueryRow(query,
		p.StudentUsername, p.CourseTitle, p.Amount, p.Currency, string(p.Method),
		p.PaymentDate, string(p.Status), p.Reference, p.Note,
	).Scan(&p.ID)
}

func UpdatePayment(db *sql.DB, p *models.Payment) (bool, error) {
	query := `UPDATE payments
			  SET student_username = $1, course_title = $2, amount = $3, currency = $4, method = $5,
			      payment_date = $6, status = $7, reference = $8, note = $9
			  WHERE id = $10`
	return affected(db.Exec(query,
		p.StudentUsername, p.CourseTitle, p.Amount, p.Currency, string(p.Method),
		p.PaymentDate, string(p.Status), p.Reference, p.Note, p.ID,
	))
}

func DeletePayment(db *sql.DB, id int64) (bool, error) {
	return affected(db.Exec(`DELETE FROM payments WHERE id = $1`, id))
}

func GetAllPayments(db *sql.DB) ([]*models.Payment, error) {
	return queryPayments(db, `SELECT `+paymentColumns+` FROM payments ORDER BY payment_date DESC`)
}

func GetPaymentsByStudent(db *sql.DB, username string) ([]*models.Payment, error) {
	return queryPayments(db,
		`SELECT `+paymentColumns+` FROM payments WHERE student_username = $1 ORDER BY payment_date DESC`, username)
}

func GetPaymentsByCourse(db *sql.DB, title string) ([]*models.Payment, error) {
	return queryPayments(db,
		`SELECT `+paymentColumns+` FROM payments WHERE course_title = $1 ORDER BY payment_date DESC`, title)
}

// GetStudentBalance sums the prices of the student's active courses and the
// completed payments made against them.
func GetStudentBalance(db *sql.DB, username string) (*models.StudentBalance, error) {
	b := &models.StudentBalance{StudentUsername: username}

	dueQuery := `SELECT COALESCE(SUM(c.course_price), 0)
				 FROM enrolments e
				 JOIN courses c ON c.title = e.course_title
				 WHERE e.student_username = $1 AND e.enroll_status = $2`
	if err := db.QueryRow(dueQuery, username, string(models.EnrolmentActive)).Scan(&b.Due); err != nil {
		return nil, fmt.Errorf("sum course prices: %w", err)
	}

	paidQuery := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE student_username = $1 AND status = $2`
	if err := db.QueryRow(paidQuery, username, string(models.PaymentCompleted)).Scan(&b.Paid); err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	b.Balance = b.Due - b.Paid
	return b, nil
}
