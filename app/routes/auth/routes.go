package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"school-management/app/config"
	"school-management/app/flash"
	"school-management/app/models"
)

// SetupAuthRoutes gives app its own session store and registers the login
// pages. Routes registered afterwards share that store.
func SetupAuthRoutes(app *fiber.App) {
	secure := config.AppConfig != nil && config.AppConfig.SecureCookies
	app.Use(useStore(NewStore(secure)))

	app.Get("/login", ShowLoginPage)
	app.Post("/login", LoginRateLimiter(), LoginAPI)
	app.Get("/register", ShowRegisterPage)
	app.Post("/register", RegisterAPI)
	app.Get("/logout", LogoutAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	if user := SessionUser(c); user != nil {
		return c.Redirect(user.Role.HomePath())
	}
	msgs := flash.Pop(c)
	return c.Render("auth/login", fiber.Map{
		"Title":   "Login",
		"Error":   msgs.Error,
		"Success": msgs.Success,
	}, "")
}

func renderLogin(c *fiber.Ctx, status int, errMsg string) error {
	return c.Status(status).Render("auth/login", fiber.Map{
		"Title": "Login",
		"Error": errMsg,
	}, "")
}

func renderRegister(c *fiber.Ctx, status int, errMsg string) error {
	return c.Status(status).Render("auth/register", fiber.Map{
		"Title": "Create the administrator account",
		"Error": errMsg,
	}, "")
}

// AuthMiddleware requires a logged-in session and sets the user in Locals
func AuthMiddleware(c *fiber.Ctx) error {
	user := SessionUser(c)
	if user == nil {
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Not logged in"})
		}
		return c.Redirect("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// RoleMiddleware checks if user has the required role
func RoleMiddleware(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user != nil && user.Role == role {
			return c.Next()
		}

		if user != nil {
			log.Printf("Access denied: user=%s role=%s path=%s required=%s", user.Username, user.Role, c.Path(), role)
		}
		return fiber.NewError(fiber.StatusForbidden, "You don't have permission to access this resource.")
	}
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
