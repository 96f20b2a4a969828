package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"school-management/app/models"
)

const sessionLifetime = 24 * time.Hour

const storeKey = "session_store"

// fallbackStore serves handlers mounted on an app without SetupAuthRoutes.
var fallbackStore = NewStore(false)

// storeFor returns the session store of the app serving c.
func storeFor(c *fiber.Ctx) *session.Store {
	if store, ok := c.Locals(storeKey).(*session.Store); ok {
		return store
	}
	return fallbackStore
}

// useStore attaches store to every request handled after it.
func useStore(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(storeKey, store)
		return c.Next()
	}
}

func NewStore(secure bool) *session.Store {
	return session.New(session.Config{
		Expiration:     sessionLifetime,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}

// Login stores u in a fresh session.
func Login(c *fiber.Ctx, u *models.User) error {
	sess, err := storeFor(c).Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	su := u.SessionUser()
	sess.Set("user_id", su.ID)
	sess.Set("username", su.Username)
	sess.Set("email", su.Email)
	sess.Set("role", string(su.Role))
	return sess.Save()
}

// SessionUser returns the logged-in user, or nil.
func SessionUser(c *fiber.Ctx) *models.SessionUser {
	sess, err := storeFor(c).Get(c)
	if err != nil {
		return nil
	}
	id, ok := sess.Get("user_id").(int64)
	if !ok {
		return nil
	}
	username, _ := sess.Get("username").(string)
	email, _ := sess.Get("email").(string)
	role, _ := sess.Get("role").(string)
	return &models.SessionUser{ID: id, Username: username, Email: email, Role: models.Role(role)}
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.SessionUser {
	u, _ := c.Locals("user").(*models.SessionUser)
	return u
}

// LoginRateLimiter slows down password guessing per client IP.
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).Render("auth/login", fiber.Map{
				"Title": "Login",
				"Error": "Too many login attempts. Please try again in a minute.",
			}, "")
		},
	})
}
