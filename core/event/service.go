package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("event not found")
	ErrNotOwner = errors.New("only the organizer may modify this event")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, ev Event) (Event, error)
		QueryAllEvents(ctx context.Context) ([]Event, error)
		GetEventByID(ctx context.Context, id string) (Event, error)
		UpdateEvent(ctx context.Context, ev Event) (Event, error)
		DeleteEvent(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ne NewEvent, organizerID string) (Event, error) {
	now := time.Now().UTC()
	ev := Event{
		ID:          uuid.New().String(),
		Title:       ne.Title,
		Description: ne.Description,
		EventDate:   ne.EventDate,
		Location:    ne.Location,
		Tags:        ne.Tags,
		Audience:    ne.Audience,
		StartTime:   ne.StartTime,
		EndTime:     ne.EndTime,
		Organizer:   organizerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateEvent(ctx, ev)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, id)
}

// Update applies ue to the event iff actorID is its organizer.
func (svc *Service) Update(ctx context.Context, id string, ue UpdateEvent, actorID string) (Event, error) {
	ev, err := svc.repo.GetEventByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if ev.Organizer != actorID {
		return Event{}, ErrNotOwner
	}
	ev = ue.apply(ev)
	ev.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEvent(ctx, ev)
}

// Delete removes the event iff actorID is its organizer.
func (svc *Service) Delete(ctx context.Context, id, actorID string) error {
	ev, err := svc.repo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if ev.Organizer != actorID {
		return ErrNotOwner
	}
	return svc.repo.DeleteEvent(ctx, id)
}
