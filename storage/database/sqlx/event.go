package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/campushq/eventsync/core/event"
)

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO event (id, title, description, event_date, location, tags, audience, start_time, end_time, organizer, created_at, updated_at)
		VALUES (:id, :title, :description, :event_date, :location, :tags, :audience, :start_time, :end_time, :organizer, :created_at, :updated_at)`,
		ev,
	)
	return ev, err
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	err := repo.db.SelectContext(ctx, &events, `SELECT * FROM event ORDER BY event_date`)
	return events, err
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	var ev event.Event
	err := repo.db.GetContext(ctx, &ev, `SELECT * FROM event WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return event.Event{}, event.ErrNotFound
	}
	return ev, err
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE event
		SET title = :title, description = :description, event_date = :event_date, location = :location,
		    tags = :tags, audience = :audience, start_time = :start_time, end_time = :end_time, updated_at = :updated_at
		WHERE id = :id`,
		ev,
	)
	if err != nil {
		return event.Event{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return ev, nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM event WHERE id = $1`, id)
	return err
}
