package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"school-management/app/calendar"
	"school-management/app/config"
	"school-management/app/models"
	"school-management/app/routes/auth"
	"school-management/app/routes/courses"
	"school-management/app/routes/dashboard"
	"school-management/app/routes/enrolments"
	"school-management/app/routes/events"
	"school-management/app/routes/payments"
	"school-management/app/routes/students"
	"school-management/app/routes/teachers"
	"school-management/app/routes/users"
)

// Options tweaks the application for tests and development.
type Options struct {
	TemplatesDir string
	StaticDir    string
	Reload       bool
	AccessLog    bool
}

// NewEngine builds the template engine with the helpers used by the views.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})
	engine.AddFunc("formatDate", func(t time.Time) string {
		return calendar.DateKey(t)
	})
	engine.AddFunc("money", func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
	return engine
}

// New wires every route of the application.
func New(opts Options) *fiber.App {
	engine := NewEngine(opts.TemplatesDir)
	engine.Reload(opts.Reload)

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		UnescapePath:      true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Format:     "[${time}] ${locals:requestid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		}))
	}
	app.Use(cors.New())

	if opts.StaticDir != "" {
		app.Static("/static", opts.StaticDir)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	auth.SetupAuthRoutes(app)

	admin := app.Group("/admin", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin))
	dashboard.SetupDashboardRoutes(admin)
	users.SetupUsersRoutes(admin)
	courses.SetupCoursesRoutes(admin)
	enrolments.SetupEnrolmentsRoutes(admin)
	payments.SetupPaymentsRoutes(admin)
	events.SetupEventsRoutes(admin)

	teachers.SetupTeachersRoutes(app)
	students.SetupStudentsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	return app
}

// FromConfig builds the application from config.AppConfig.
func FromConfig() *fiber.App {
	cfg := config.AppConfig
	return New(Options{
		TemplatesDir: cfg.TemplatesDir,
		StaticDir:    cfg.StaticDir,
		Reload:       config.GetEnvBool("TEMPLATES_RELOAD", false),
		AccessLog:    true,
	})
}

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code == fiber.StatusInternalServerError {
		log.Printf("Error on %s %s: %v", c.Method(), c.Path(), err)
	}

	if strings.HasPrefix(c.Path(), "/api") || strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	data := fiber.Map{
		"CurrentPage": "",
		"User":        auth.SessionUser(c),
		"ErrorCode":   code,
	}
	name := "error"
	switch code {
	case fiber.StatusNotFound:
		name = "404"
		data["Title"] = "Page Not Found - School Management"
	case fiber.StatusForbidden:
		data["Title"] = "Access Forbidden - School Management"
		data["ErrorTitle"] = "Access Forbidden"
		data["ErrorMessage"] = "You don't have permission to access this resource."
	case fiber.StatusInternalServerError:
		data["Title"] = "Server Error - School Management"
		data["ErrorTitle"] = "Internal Server Error"
		data["ErrorMessage"] = "We're experiencing technical difficulties. Please try again later."
		data["ShowRetry"] = true
	default:
		data["Title"] = "Error - School Management"
		data["ErrorTitle"] = "An Error Occurred"
		data["ErrorMessage"] = err.Error()
	}

	if rerr := c.Status(code).Render(name, data); rerr != nil {
		log.Printf("Error rendering %s page: %v", name, rerr)
		return c.Status(code).SendString(err.Error())
	}
	return nil
}
