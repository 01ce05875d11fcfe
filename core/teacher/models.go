package teacher

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/campushq/eventsync/core"
)

type Teacher struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Department string    `json:"department" db:"department"`
	Subject    string    `json:"subject,omitempty" db:"subject"`
	Phone      string    `json:"phone,omitempty" db:"phone"`
	TeacherID  string    `json:"teacher_id" db:"teacher_id"` // e.g. TCH001
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedBy  string    `json:"created_by" db:"created_by"` // admin user ID
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NewTeacher contains information needed to provision a teacher account.
// Credentials are never accepted from callers; they are generated.
type NewTeacher struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required"`
	Subject    string `json:"subject"`
	Phone      string `json:"phone" validate:"omitempty,min=7,max=20"`
}

func (nt *NewTeacher) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, nt.Email)
}

// Credentials are the generated login details mailed to a new teacher.
type Credentials struct {
	TeacherID string
	Email     string
	Password  string
	LoginURL  string
}
