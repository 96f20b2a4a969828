package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"school-management/app/models"
)

const userColumns = `id, username, email, password, role, created_at`

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	var role string
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &role, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}

func queryUsers(db *sql.DB, query string, args ...any) ([]*models.User, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func GetUserByUsername(db *sql.DB, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(db.QueryRow(query, username))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(db.QueryRow(query, email))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func GetUserByID(db *sql.DB, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// CreateUser hashes user.Password and inserts the user, filling ID and CreatedAt.
func CreateUser(db *sql.DB, user *models.User) error {
	hashed, err := HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	query := `INSERT INTO users (username, email, password, role, created_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  RETURNING id, created_at`
	if err := db.QueryRow(query, user.Username, user.Email, hashed, string(user.Role)).
		Scan(&user.ID, &user.CreatedAt); err != nil {
		return err
	}
	user.Password = hashed
	return nil
}

func CountUsers(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func GetAllUsers(db *sql.DB) ([]*models.User, error) {
	return queryUsers(db, `SELECT `+userColumns+` FROM users ORDER BY username ASC`)
}

func GetUsersByRole(db *sql.DB, role models.Role) ([]*models.User, error) {
	return queryUsers(db, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY username ASC`, string(role))
}

func UpdateUserRole(db *sql.DB, id int64, role models.Role) (bool, error) {
	return affected(db.Exec(`UPDATE users SET role = $1 WHERE id = $2`, string(role), id))
}

func DeleteUser(db *sql.DB, id int64) (bool, error) {
	return affected(db.Exec(`DELETE FROM users WHERE id = $1`, id))
}
