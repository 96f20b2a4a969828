package shared

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-management/app/flash"
	"school-management/app/routes/auth"
)

// Page renders a template inside the main layout with the common page data:
// title, active menu entry, the logged-in user and any pending flash message.
// Keys already present in data are kept.
func Page(c *fiber.Ctx, status int, name, title, current string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	msgs := flash.Pop(c)
	defaults := fiber.Map{
		"Title":       title + " - School Management",
		"CurrentPage": current,
		"User":        auth.CurrentUser(c),
		"Success":     msgs.Success,
		"Error":       msgs.Error,
	}
	for k, v := range defaults {
		if existing, ok := data[k]; !ok || existing == nil || existing == "" {
			data[k] = v
		}
	}
	return c.Status(status).Render(name, data)
}

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

// ErrInvalidForm is shown when a form body cannot be decoded at all.
var ErrInvalidForm = errors.New("the submitted form could not be read")

// ParseDate reads a YYYY-MM-DD form value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}
