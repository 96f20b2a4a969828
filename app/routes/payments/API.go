package payments

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"school-management/app/config"
	"school-management/app/database"
	"school-management/app/flash"
	"school-management/app/models"
	"school-management/app/routes/enrolments"
	"school-management/app/routes/shared"
	"school-management/app/validation"
)

const pagePath = enrolments.PagePath

type PaymentRequest struct {
	StudentUsername string  `form:"student_username" validate:"required"`
	CourseTitle     string  `form:"course_title" validate:"required"`
	Amount          float64 `form:"amount" validate:"gt=0"`
	Currency        string  `form:"currency" validate:"required,len=3"`
	Method          string  `form:"method" validate:"required,oneof=cash card transfer cheque"`
	PaymentDate     string  `form:"payment_date" validate:"required,datetime=2006-01-02"`
	Status          string  `form:"status" validate:"required,oneof=pending completed failed refunded"`
	Reference       string  `form:"reference" validate:"max=100"`
	Note            string  `form:"note"`
}

func ShowPaymentsByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	return enrolments.Render(c, &enrolments.Filter{
		Label: "student " + username,
		Payments: func() ([]*models.Payment, error) {
			return database.GetPaymentsByStudent(config.GetDB(), username)
		},
	})
}

func ShowPaymentsByCourse(c *fiber.Ctx) error {
	title := c.Params("title")
	return enrolments.Render(c, &enrolments.Filter{
		Label: "course " + title,
		Payments: func() ([]*models.Payment, error) {
			return database.GetPaymentsByCourse(config.GetDB(), title)
		},
	})
}

func parse(c *fiber.Ctx) (*models.Payment, error) {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, shared.ErrInvalidForm
	}
	req.StudentUsername = strings.TrimSpace(req.StudentUsername)
	req.CourseTitle = strings.TrimSpace(req.CourseTitle)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &models.Payment{
		StudentUsername: req.StudentUsername,
		CourseTitle:     req.CourseTitle,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Method:          models.PaymentMethod(req.Method),
		PaymentDate:     date,
		Status:          models.PaymentStatus(req.Status),
		Reference:       strings.TrimSpace(req.Reference),
		Note:            strings.TrimSpace(req.Note),
	}, nil
}

func AddPayment(c *fiber.Ctx) error {
	p, err := parse(c)
	if err != nil {
		return flash.Redirect(c, pagePath, flash.Error, err.Error())
	}
	if err := database.CreatePayment(config.GetDB(), p); err != nil {
		log.Printf("Error adding payment for %q: %v", p.StudentUsername, err)
		return flash.Redirect(c, pagePath, flash.Error, "Server error while recording payment.")
	}
	return flash.Redirect(c, pagePath, flash.Success, "Payment recorded with success.")
}

func EditPayment(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, pagePath, flash.Error, "Invalid payment ID.")
	}
	p, err := parse(c)
	if err != nil {
		return flash.Redirect(c, pagePath, flash.Error, err.Error())
	}
	p.ID = id

	ok, err := database.UpdatePayment(config.GetDB(), p)
	switch {
	case err != nil:
		log.Printf("Error editing payment %d: %v", id, err)
		return flash.Redirect(c, pagePath, flash.Error, "Server error while updating payment.")
	case !ok:
		return flash.Redirect(c, pagePath, flash.Error, "Error updating payment.")
	}
	return flash.Redirect(c, pagePath, flash.Success, "Payment updated with success.")
}

func DeletePayment(c *fiber.Ctx) error {
	id, err := shared.ParamID(c)
	if err != nil {
		return flash.Redirect(c, pagePath, flash.Error, "Invalid payment ID.")
	}

	ok, err := database.DeletePayment(config.GetDB(), id)
	switch {
	case err != nil:
		log.Printf("Error deleting payment %d: %v", id, err)
		return flash.Redirect(c, pagePath, flash.Error, "Server error while deleting payment.")
	case !ok:
		return flash.Redirect(c, pagePath, flash.Error, "Error deleting payment.")
	}
	return flash.Redirect(c, pagePath, flash.Success, "Payment deleted with success.")
}
