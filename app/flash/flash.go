// Package flash carries one-shot status messages across a redirect in a
// short-lived signed cookie, so nothing is stored server-side.
package flash

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"school-management/app/config"
)

const (
	cookieName = "flash"
	lifetime   = time.Minute
	issuer     = "school-management/flash"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Messages is what a page receives after a redirect. At most one field is set.
type Messages struct {
	Success string
	Error   string
}

type claims struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

func secret() []byte {
	if config.AppConfig == nil || config.AppConfig.SessionSecret == "" {
		return []byte("school-management-dev-secret")
	}
	return []byte(config.AppConfig.SessionSecret)
}

func secure() bool {
	return config.AppConfig != nil && config.AppConfig.SecureCookies
}

// Set stores msg for the next request.
func Set(c *fiber.Ctx, kind Kind, msg string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind:    kind,
		Message: msg,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	})
	signed, err := token.SignedString(secret())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(lifetime),
		HTTPOnly: true,
		Secure:   secure(),
		SameSite: "Lax",
	})
	return nil
}

// Redirect sets a message and redirects to path.
func Redirect(c *fiber.Ctx, path string, kind Kind, msg string) error {
	if err := Set(c, kind, msg); err != nil {
		return err
	}
	return c.Redirect(path)
}

// Pop returns the pending message, if any, and clears it. Expired or
// tampered tokens are discarded silently.
func Pop(c *fiber.Ctx) Messages {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return Messages{}
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   secure(),
		SameSite: "Lax",
	})

	parsed, err := decode(raw)
	if err != nil {
		return Messages{}
	}
	switch parsed.Kind {
	case Success:
		return Messages{Success: parsed.Message}
	case Error:
		return Messages{Error: parsed.Message}
	}
	return Messages{}
}

// decode verifies a flash token.
func decode(raw string) (*claims, error) {
	token, err := jwt.ParseWithClaims(raw, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	if c, ok := token.Claims.(*claims); ok && token.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
