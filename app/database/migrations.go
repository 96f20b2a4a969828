package database

import (
	"database/sql"
	"log"
)

type migration struct {
	name  string
	query string
}

var migrations = []migration{
	{"create users table", `
		CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL PRIMARY KEY,
			username   VARCHAR(50)  NOT NULL UNIQUE,
			email      VARCHAR(255) NOT NULL UNIQUE,
			password   VARCHAR(255) NOT NULL,
			role       VARCHAR(20)  NOT NULL CHECK (role IN ('admin', 'teacher', 'student')),
			created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`},
	{"create courses table", `
		CREATE TABLE IF NOT EXISTS courses (
			id           BIGSERIAL PRIMARY KEY,
			title        VARCHAR(255)   NOT NULL UNIQUE,
			description  TEXT           NOT NULL DEFAULT '',
			coefficient  NUMERIC(5,2)   NOT NULL DEFAULT 1,
			course_hours INTEGER        NOT NULL DEFAULT 0,
			course_price NUMERIC(12,2)  NOT NULL DEFAULT 0,
			created_at   TIMESTAMPTZ    NOT NULL DEFAULT NOW()
		)`},
	{"create enrolments table", `
		CREATE TABLE IF NOT EXISTS enrolments (
			id               BIGSERIAL PRIMARY KEY,
			student_username VARCHAR(50)  NOT NULL REFERENCES users(username) ON UPDATE CASCADE ON DELETE CASCADE,
			course_title     VARCHAR(255) NOT NULL REFERENCES courses(title) ON UPDATE CASCADE ON DELETE CASCADE,
			enroll_status    VARCHAR(20)  NOT NULL DEFAULT 'active',
			enroll_date      DATE         NOT NULL DEFAULT CURRENT_DATE
		)`},
	{"create payments table", `
		CREATE TABLE IF NOT EXISTS payments (
			id               BIGSERIAL PRIMARY KEY,
			student_username VARCHAR(50)   NOT NULL,
			course_title     VARCHAR(255)  NOT NULL,
			amount           NUMERIC(12,2) NOT NULL,
			currency         VARCHAR(3)    NOT NULL DEFAULT 'EUR',
			method           VARCHAR(20)   NOT NULL,
			payment_date     DATE          NOT NULL,
			status           VARCHAR(20)   NOT NULL DEFAULT 'pending',
			reference        VARCHAR(100)  NOT NULL DEFAULT '',
			note             TEXT          NOT NULL DEFAULT ''
		)`},
	{"create events table", `
		CREATE TABLE IF NOT EXISTS events (
			id          BIGSERIAL PRIMARY KEY,
			title       VARCHAR(255) NOT NULL,
			description TEXT,
			date        DATE,
			time        TIME,
			status      VARCHAR(50),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"index events by date", `CREATE INDEX IF NOT EXISTS idx_events_date ON events (date, time)`},
	{"index payments by student", `CREATE INDEX IF NOT EXISTS idx_payments_student ON payments (student_username)`},
}

// RunMigrations creates any missing tables and indexes
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, m := range migrations {
		if _, err := db.Exec(m.query); err != nil {
			log.Printf("Failed to run migration %q: %v", m.name, err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
