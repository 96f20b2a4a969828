package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Username        string `validate:"required,min=3"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"eqfield=Password"`
	Role            string `validate:"oneof=admin teacher student"`
}

func TestStruct(t *testing.T) {
	valid := signup{Username: "alice", Email: "a@school.test", Password: "password1", ConfirmPassword: "password1", Role: "admin"}

	tests := []struct {
		name    string
		mutate  func(s *signup)
		wantErr string
	}{
		{name: "valid", mutate: func(s *signup) {}},
		{name: "missing username", mutate: func(s *signup) { s.Username = "" }, wantErr: "Username is required"},
		{name: "short username", mutate: func(s *signup) { s.Username = "al" }, wantErr: "Username must be at least 3 characters"},
		{name: "bad email", mutate: func(s *signup) { s.Email = "nope" }, wantErr: "Email must be a valid email address"},
		{name: "mismatch", mutate: func(s *signup) { s.ConfirmPassword = "other" }, wantErr: "Confirm password does not match"},
		{name: "bad role", mutate: func(s *signup) { s.Role = "root" }, wantErr: "Role must be one of: admin, teacher, student"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := Struct(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

type payment struct {
	Amount      float64 `validate:"gt=0"`
	Currency    string  `validate:"len=3"`
	PaymentDate string  `validate:"datetime=2006-01-02"`
}

func TestStruct_paymentRules(t *testing.T) {
	assert.NoError(t, Struct(payment{Amount: 10, Currency: "EUR", PaymentDate: "2026-03-15"}))
	assert.EqualError(t, Struct(payment{Amount: 0, Currency: "EUR", PaymentDate: "2026-03-15"}), "Amount must be greater than 0")
	assert.EqualError(t, Struct(payment{Amount: 1, Currency: "EURO", PaymentDate: "2026-03-15"}), "Currency must be exactly 3 characters")
	assert.EqualError(t, Struct(payment{Amount: 1, Currency: "EUR", PaymentDate: "15/03/2026"}), "Payment date must be formatted as 2006-01-02")
}
