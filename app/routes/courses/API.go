package courses

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/flash"
	"school-management/app/models"
	"school-management/app/routes/shared"
	"school-management/app/validation"
)

const coursesPath = "/admin/courses"

type CourseRequest struct {
	Title       string  `form:"title" validate:"required,max=255"`
	Description string  `form:"description"`
	Coefficient float64 `form:"coefficient" validate:"gte=0"`
	CourseHours int     `form:"course_hours" validate:"gte=0"`
	CoursePrice float64 `form:"course_price" validate:"gte=0"`
}

func (r CourseRequest) course() *models.Course {
	return &models.Course{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Coefficient: r.Coefficient,
		CourseHours: r.CourseHours,
		CoursePrice: r.CoursePrice,
	}
}

func render(c *fiber.Ctx, status int, data fiber.Map) error {
	courses, err := database.GetAllCourses(config.GetDB())
	if err != nil {
		log.Printf("Error showing courses: %v", err)
		status = fiber.StatusInternalServerError
		data["Error"] = "Server error while loading courses."
	}
	data["Courses"] = courses
	return shared.Page(c, status, "admin/courses", "Courses", "courses", data)
}

func ShowAllCourses(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, fiber.Map{})
}

// ShowCourseByTitle renders the course list with the edit form for one course.
func ShowCourseByTitle(c *fiber.Ctx) error {
	title := c.Params("title")
	course, err := database.GetCourseByTitle(config.GetDB(), title)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return flash.Redirect(c, coursesPath, flash.Error, "Course not found.")
		}
		log.Printf("Error showing course %q: %v", title, err)
		return flash.Redirect(c, coursesPath, flash.Error, "Server error while loading course.")
	}
	return render(c, fiber.StatusOK, fiber.Map{"CourseToEdit": course})
}

func parse(c *fiber.Ctx) (*models.Course, error) {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, shared.ErrInvalidForm
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return req.course(), nil
}

func AddCourse(c *fiber.Ctx) error {
	course, err := parse(c)
	if err != nil {
		return flash.Redirect(c, coursesPath, flash.Error, err.Error())
	}

	if err := database.CreateCourse(config.GetDB(), course); err != nil {
		if database.IsUniqueViolation(err) {
			return flash.Redirect(c, coursesPath, flash.Error, "A course with this title already exists.")
		}
		log.Printf("Error adding course %q: %v", course.Title, err)
		return flash.Redirect(c, coursesPath, flash.Error, "Server error while adding course.")
	}
	return flash.Redirect(c, coursesPath, flash.Success, "Course added with success.")
}

func EditCourse(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, coursesPath, flash.Error, "Invalid course ID.")
	}
	course, err := parse(c)
	if err != nil {
		return flash.Redirect(c, coursesPath, flash.Error, err.Error())
	}
	course.ID = id

	ok, err := database.UpdateCourse(config.GetDB(), course)
	switch {
	case database.IsUniqueViolation(err):
		return flash.Redirect(c, coursesPath, flash.Error, "A course with this title already exists.")
	case err != nil:
		log.Printf("Error editing course %d: %v", id, err)
		return flash.Redirect(c, coursesPath, flash.Error, "Server error while updating course.")
	case !ok:
		return flash.Redirect(c, coursesPath, flash.Error, "Error updating course.")
	}
	return flash.Redirect(c, coursesPath, flash.Success, "Course updated with success.")
}

func DeleteCourse(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, coursesPath, flash.Error, "Invalid course ID.")
	}

	ok, err := database.DeleteCourse(config.GetDB(), id)
	switch {
	case err != nil:
		log.Printf("Error deleting course %d: %v", id, err)
		return flash.Redirect(c, coursesPath, flash.Error, "Server error while deleting course.")
	case !ok:
		return flash.Redirect(c, coursesPath, flash.Error, "Error deleting course.")
	}
	return flash.Redirect(c, coursesPath, flash.Success, "Course deleted with success.")
}
