package server

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"school-management/app/config"
)

var (
	userCols   = []string{"id", "username", "email", "password", "role", "created_at"}
	eventCols  = []string{"id", "title", "description", "date", "time", "status", "created_at", "updated_at"}
	courseCols = []string{"id", "title", "description", "coefficient", "course_hours", "course_price", "created_at"}
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		DB:            db,
		SessionSecret: "test-secret",
		Location:      time.UTC,
	}
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
		config.AppConfig = prev
	})

	return New(Options{TemplatesDir: "../templates"}), mock
}

func send(t *testing.T, app *fiber.App, req *http.Request, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// login signs in username with the given role and returns the session cookie.
func login(t *testing.T, app *fiber.App, mock sqlmock.Sqlmock, username, role string) *http.Cookie {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, username, username+"@school.test", string(hash), role, time.Now()))

	resp, _ := send(t, app, postForm("/login", url.Values{
		"username": {username},
		"password": {"password123"},
	}))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/"+role, resp.Header.Get(fiber.HeaderLocation))

	session := cookie(resp, "session_id")
	require.NotNil(t, session)
	return session
}

func TestRootRedirectsToLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestLoginPage(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/login"`)
}

func TestLogin_wrongPassword(t *testing.T) {
	app, mock := newTestApp(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "alice", "alice@school.test", string(hash), "admin", time.Now()))

	resp, body := send(t, app, postForm("/login", url.Values{"username": {"alice"}, "password": {"nope"}}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")
	assert.Nil(t, cookie(resp, "session_id"))
}

func TestAdminRequiresLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/admin/courses", nil))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	req := httptest.NewRequest(http.MethodGet, "/admin/students/total-amount/alice", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, _ = send(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRejectsOtherRoles(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "tina", "teacher")

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/admin/courses", nil), session)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Access Forbidden")
}

func TestLoginPage_redirectsLoggedInUser(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "sam", "student")

	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/login", nil), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/student", resp.Header.Get(fiber.HeaderLocation))
}

func TestLogout(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/logout", nil), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp, _ = send(t, app, httptest.NewRequest(http.MethodGet, "/admin/courses", nil), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestCalendarPage(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE date >= $1 AND date < $2`)).
		WithArgs(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(3, "Staff meeting", "Room 12", day, "09:00:00", "planned", time.Now(), time.Now()).
			AddRow(4, "Open day", nil, day, nil, nil, time.Now(), time.Now()))

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/admin/calendar?month=2026-03", nil), session)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "March 2026")
	assert.Contains(t, body, "09:00 Staff meeting")
	assert.Contains(t, body, "Open day")
	assert.Contains(t, body, `month=2026-02`)
	assert.Contains(t, body, `month=2026-04`)
}

func TestCalendarPage_invalidMonth(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	for _, month := range []string{"2026-13", "2026-00", "26-03", "abcd-ef"} {
		resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/admin/calendar?month="+month, nil), session)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, month)
		assert.Equal(t, "/admin/calendar", resp.Header.Get(fiber.HeaderLocation), month)
		assert.NotNil(t, cookie(resp, "flash"), month)
	}
}

func TestCalendarExport(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	mock.ExpectQuery(regexp.QuoteMeta(`FROM events`)).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(3, "Staff meeting", "Room 12", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), "09:00:00", "planned", time.Now(), time.Now()))

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/admin/calendar.ics", nil), session)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/calendar")
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Staff meeting")
}

func TestAddCourse_flashesOnce(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO courses`)).
		WithArgs("Algebra", "Linear equations", 2.0, 30, 120.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	resp, _ := send(t, app, postForm("/admin/courses/add", url.Values{
		"title":        {"  Algebra "},
		"description":  {"Linear equations"},
		"coefficient":  {"2"},
		"course_hours": {"30"},
		"course_price": {"120"},
	}), session)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/courses", resp.Header.Get(fiber.HeaderLocation))
	flashCookie := cookie(resp, "flash")
	require.NotNil(t, flashCookie)

	listing := sqlmock.NewRows(courseCols).AddRow(1, "Algebra", "Linear equations", 2.0, 30, 120.0, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses ORDER BY title`)).WillReturnRows(listing)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/admin/courses", nil), session, flashCookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Course added with success.")
	assert.Contains(t, body, "Algebra")

	cleared := cookie(resp, "flash")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestAddCourse_invalidForm(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	resp, _ := send(t, app, postForm("/admin/courses/add", url.Values{"title": {""}, "course_price": {"-1"}}), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/courses", resp.Header.Get(fiber.HeaderLocation))
	assert.NotNil(t, cookie(resp, "flash"))
}

func TestStudentTotalAmount(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	mock.ExpectQuery(regexp.QuoteMeta(`SUM(c.course_price)`)).
		WithArgs("alice", "active").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(300.0))
	mock.ExpectQuery(regexp.QuoteMeta(`SUM(amount)`)).
		WithArgs("alice", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(120.0))

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/admin/students/total-amount/alice", nil), session)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"total":300,"paid":120,"balance":180}`, body)
}

func TestDeleteEvent_redirectsToEventMonth(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(9, "Exam", nil, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), nil, nil, time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, _ := send(t, app, postForm("/admin/calendar/delete/9", url.Values{}), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/calendar?month=2026-06", resp.Header.Get(fiber.HeaderLocation))
}

func TestDeleteUser_refusesSelf(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	resp, _ := send(t, app, postForm("/admin/users/delete/1", url.Values{}), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get(fiber.HeaderLocation))
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

func TestDeleteEvent_lookupFailures(t *testing.T) {
	app, mock := newTestApp(t)
	session := login(t, app, mock, "root", "admin")

	mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	resp, _ := send(t, app, postForm("/admin/calendar/delete/404", url.Values{}), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/calendar", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "Event not found.", flashMessage(t, resp))

	// a failed lookup still deletes, redirecting to the current month
	mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, _ = send(t, app, postForm("/admin/calendar/delete/9", url.Values{}), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/calendar", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "Event deleted with success.", flashMessage(t, resp))
}

func TestSessionsAreScopedToTheirApp(t *testing.T) {
	app, mock := newTestApp(t)
	other := New(Options{TemplatesDir: "../templates"})
	session := login(t, app, mock, "root", "admin")

	resp, _ := send(t, other, httptest.NewRequest(http.MethodGet, "/admin/courses", nil), session)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses ORDER BY title`)).
		WillReturnRows(sqlmock.NewRows(courseCols))
	resp, _ = send(t, app, httptest.NewRequest(http.MethodGet, "/admin/courses", nil), session)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
