package event

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/campushq/eventsync/core"
)

type Event struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	EventDate   time.Time  `json:"event_date" db:"event_date"`
	Location    string     `json:"location" db:"location"`
	Tags        string     `json:"tags,omitempty" db:"tags"`
	Audience    string     `json:"audience,omitempty" db:"audience"` // e.g. all, students, faculty
	StartTime   *time.Time `json:"start_time,omitempty" db:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty" db:"end_time"`
	Organizer   string     `json:"organizer" db:"organizer"` // owner user ID
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	EventDate   time.Time  `json:"event_date" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	Tags        string     `json:"tags"`
	Audience    string     `json:"audience"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Location = core.CleanString(ne.Location)
	return validate.Struct(ne)
}

// UpdateEvent defines what information may be provided to modify an
// existing Event. Unset fields are left untouched.
type UpdateEvent struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	Location    string     `json:"location"`
	Tags        *string    `json:"tags"`
	Audience    *string    `json:"audience"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	ue.Title = core.CleanString(ue.Title)
	ue.Location = core.CleanString(ue.Location)
	return validate.Struct(ue)
}

func (ue UpdateEvent) apply(ev Event) Event {
	if ue.Title != "" {
		ev.Title = ue.Title
	}
	if ue.Description != "" {
		ev.Description = ue.Description
	}
	if ue.EventDate != nil {
		ev.EventDate = *ue.EventDate
	}
	if ue.Location != "" {
		ev.Location = ue.Location
	}
	if ue.Tags != nil {
		ev.Tags = *ue.Tags
	}
	if ue.Audience != nil {
		ev.Audience = *ue.Audience
	}
	if ue.StartTime != nil {
		ev.StartTime = ue.StartTime
	}
	if ue.EndTime != nil {
		ev.EndTime = ue.EndTime
	}
	return ev
}
