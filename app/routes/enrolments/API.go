package enrolments

import (
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

// PagePath is the enrolment and payment admin page.
const PagePath = "/admin/enrolment"

type EnrolmentRequest struct {
	StudentUsername string `form:"student_username" validate:"required"`
	CourseTitle     string `form:"course_title" validate:"required"`
	EnrollStatus    string `form:"enroll_status" validate:"required,oneof=active pending completed cancelled"`
	EnrollDate      string `form:"enroll_date" validate:"required,datetime=2006-01-02"`
}

// Filter narrows the enrolment page to one student or course.
type Filter struct {
	Label      string
	Enrolments func() ([]*models.Enrolment, error)
	Payments   func() ([]*models.Payment, error)
}

// Render shows the enrolment page. A nil filter lists everything.
func Render(c *fiber.Ctx, filter *Filter) error {
	data, err := database.GetEnrolmentPageData(config.GetDB())
	if err != nil {
		log.Printf("Error showing enrolments and payments: %v", err)
		return shared.Page(c, fiber.StatusInternalServerError, "admin/enrolment", "Enrolments", "enrolment", fiber.Map{
			"Error":    "Server error",
			"Statuses": enrolmentStatuses,
			"Methods":  paymentMethods,
		})
	}

	page := fiber.Map{
		"Students":        data.Students,
		"Courses":         data.Courses,
		"Enrolments":      data.Enrolments,
		"Payments":        data.Payments,
		"Statuses":        enrolmentStatuses,
		"PaymentStatuses": paymentStatuses,
		"Methods":         paymentMethods,
	}
	if filter != nil {
		page["Filter"] = filter.Label
		if filter.Enrolments != nil {
			enrolments, err := filter.Enrolments()
			if err != nil {
				log.Printf("Error loading enrolments for %s: %v", filter.Label, err)
				return flash.Redirect(c, PagePath, flash.Error, "Server error while loading enrolments.")
			}
			page["Enrolments"] = enrolments
		}
		if filter.Payments != nil {
			payments, err := filter.Payments()
			if err != nil {
				log.Printf("Error loading payments for %s: %v", filter.Label, err)
				return flash.Redirect(c, PagePath, flash.Error, "Server error while loading payments.")
			}
			page["Payments"] = payments
		}
	}
	return shared.Page(c, fiber.StatusOK, "admin/enrolment", "Enrolments", "enrolment", page)
}

var (
	enrolmentStatuses = []models.EnrolmentStatus{
		models.EnrolmentActive, models.EnrolmentPending, models.EnrolmentCompleted, models.EnrolmentCancelled,
	}
	paymentStatuses = []models.PaymentStatus{
		models.PaymentPending, models.PaymentCompleted, models.PaymentFailed, models.PaymentRefunded,
	}
	paymentMethods = []models.PaymentMethod{
		models.MethodCash, models.MethodCard, models.MethodTransfer, models.MethodCheque,
	}
)

func ShowEnrolmentPage(c *fiber.Ctx) error {
	return Render(c, nil)
}

func ShowEnrolmentsByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	return Render(c, &Filter{
		Label: "student " + username,
		Enrolments: func() ([]*models.Enrolment, error) {
			return database.GetEnrolmentsByStudent(config.GetDB(), username)
		},
	})
}

func ShowEnrolmentsByCourse(c *fiber.Ctx) error {
	title := c.Params("title")
	return Render(c, &Filter{
		Label: "course " + title,
		Enrolments: func() ([]*models.Enrolment, error) {
			return database.GetEnrolmentsByCourse(config.GetDB(), title)
		},
	})
}

func parse(c *fiber.Ctx) (*models.Enrolment, error) {
	var req EnrolmentRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, shared.ErrInvalidForm
	}
	req.StudentUsername = strings.TrimSpace(req.StudentUsername)
	req.CourseTitle = strings.TrimSpace(req.CourseTitle)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.EnrollDate)
	if err != nil {
		return nil, err
	}
	return &models.Enrolment{
		StudentUsername: req.StudentUsername,
		CourseTitle:     req.CourseTitle,
		Status:          models.EnrolmentStatus(req.EnrollStatus),
		EnrollDate:      date,
	}, nil
}

func AddEnrolment(c *fiber.Ctx) error {
	e, err := parse(c)
	if err != nil {
		return flash.Redirect(c, PagePath, flash.Error, err.Error())
	}

	if err := database.CreateEnrolment(config.GetDB(), e); err != nil {
		if database.IsForeignKeyViolation(err) {
			return flash.Redirect(c, PagePath, flash.Error, "Unknown student or course.")
		}
		log.Printf("Error assigning course %q to %q: %v", e.CourseTitle, e.StudentUsername, err)
		return flash.Redirect(c, PagePath, flash.Error, "Server error while assigning course.")
	}
	return flash.Redirect(c, PagePath, flash.Success, "Course assigned with success.")
}

func EditEnrolment(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, PagePath, flash.Error, "Invalid enrolment ID.")
	}
	e, err := parse(c)
	if err != nil {
		return flash.Redirect(c, PagePath, flash.Error, err.Error())
	}
	e.ID = id

	ok, err := database.UpdateEnrolment(config.GetDB(), e)
	switch {
	case database.IsForeignKeyViolation(err):
		return flash.Redirect(c, PagePath, flash.Error, "Unknown student or course.")
	case err != nil:
		log.Printf("Error editing enrolment %d: %v", id, err)
		return flash.Redirect(c, PagePath, flash.Error, "Server error while updating enrolment.")
	case !ok:
		return flash.Redirect(c, PagePath, flash.Error, "Error updating enrolment.")
	}
	return flash.Redirect(c, PagePath, flash.Success, "Enrolment updated with success.")
}

func DeleteEnrolment(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, PagePath, flash.Error, "Invalid enrolment ID.")
	}

	ok, err := database.DeleteEnrolment(config.GetDB(), id)
	switch {
	case err != nil:
		log.Printf("Error deleting enrolment %d: %v", id, err)
		return flash.Redirect(c, PagePath, flash.Error, "Server error while deleting enrolment.")
	case !ok:
		return flash.Redirect(c, PagePath, flash.Error, "Error deleting enrolment.")
	}
	return flash.Redirect(c, PagePath, flash.Success, "Enrolment deleted with success.")
}

// GetStudentTotalAmountAPI returns what a student owes for active enrolments
func GetStudentTotalAmountAPI(c *fiber.Ctx) error {
	username := c.Params("username")
	balance, err := database.GetStudentBalance(config.GetDB(), username)
	if err != nil {
		log.Printf("Error computing balance for %q: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Unable to compute the amount.",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"total":   balance.Due,
		"paid":    balance.Paid,
		"balance": balance.Balance,
	})
}
