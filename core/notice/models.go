package notice

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/campushq/eventsync/core"
)

type Notice struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	StartDate *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`
	Audience  string     `json:"audience,omitempty" db:"audience"`
	Priority  int        `json:"priority" db:"priority"` // 1 (high), 2 (medium), 3 (low)
	CreatedBy string     `json:"created_by" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type NewNotice struct {
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Audience  string     `json:"audience"`
	Priority  int        `json:"priority" validate:"omitempty,min=1,max=3"`
}

func (nn *NewNotice) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	return validate.Struct(nn)
}

type UpdateNotice struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Audience  *string    `json:"audience"`
	Priority  *int       `json:"priority" validate:"omitempty,min=1,max=3"`
}

func (un *UpdateNotice) Validate(validate *validator.Validate) error {
	un.Title = core.CleanString(un.Title)
	return validate.Struct(un)
}

func (un UpdateNotice) apply(n Notice) Notice {
	if un.Title != "" {
		n.Title = un.Title
	}
	if un.Content != "" {
		n.Content = un.Content
	}
	if un.StartDate != nil {
		n.StartDate = un.StartDate
	}
	if un.EndDate != nil {
		n.EndDate = un.EndDate
	}
	if un.Audience != nil {
		n.Audience = *un.Audience
	}
	if un.Priority != nil {
		n.Priority = *un.Priority
	}
	return n
}
