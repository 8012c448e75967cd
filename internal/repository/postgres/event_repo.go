package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"classregistration/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, date, location_name, address, city, state, zip, time`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	ev := &domain.Event{}
	var slot sql.NullString
	if err := s.Scan(&ev.ID, &ev.Date, &ev.LocationName, &ev.Address, &ev.City, &ev.State, &ev.Zip, &slot); err != nil {
		return nil, err
	}
	ev.Time = slot.String
	return ev, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 WHERE date >= $1
		 ORDER BY date ASC
		 LIMIT $2`, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ev, err := scanEvent(r.DB.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}
