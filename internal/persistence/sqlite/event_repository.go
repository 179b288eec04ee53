package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/event-registration/internal/persistence"
)

// dateLayout is the TEXT representation of event dates. Values are stored in UTC.
const dateLayout = "2006-01-02T15:04:05"

const eventColumns = `id, name, description, date, location, capacity`

// EventRepository implements persistence.EventRepository using SQLite
type EventRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewEventRepository creates a new SQLite event repository
func NewEventRepository(pool *ConnectionPool) *EventRepository {
	return &EventRepository{
		pool:   pool,
		mapper: NewErrorMapper(),
	}
}

// FindAll returns every event ordered by identifier.
func (r *EventRepository) FindAll(ctx context.Context) ([]persistence.Event, error) {
	rows, err := r.pool.DB().QueryContext(ctx, `SELECT `+eventColumns+` FROM event ORDER BY id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	events := make([]persistence.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return events, nil
}

// FindByID retrieves a single event.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (persistence.Event, error) {
	row := r.pool.DB().QueryRowContext(ctx, `SELECT `+eventColumns+` FROM event WHERE id = ?`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Event{}, persistence.ErrNotFound
		}
		return persistence.Event{}, r.mapper.MapError(err)
	}
	return event, nil
}

// Save inserts the event when it has no identifier and overwrites the existing
// row otherwise.
func (r *EventRepository) Save(ctx context.Context, event persistence.Event) (persistence.Event, error) {
	if event.Capacity < 0 {
		return persistence.Event{}, persistence.ErrConstraintViolation
	}
	date := event.Date.UTC().Format(dateLayout)

	if event.ID == 0 {
		result, err := r.pool.DB().ExecContext(ctx, `
			INSERT INTO event (name, description, date, location, capacity)
			VALUES (?, ?, ?, ?, ?)
		`, event.Name, event.Description, date, event.Location, event.Capacity)
		if err != nil {
			return persistence.Event{}, r.mapper.MapError(err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return persistence.Event{}, fmt.Errorf("failed to read inserted event id: %w", err)
		}
		event.ID = id
		return event, nil
	}

	result, err := r.pool.DB().ExecContext(ctx, `
		UPDATE event
		SET name = ?, description = ?, date = ?, location = ?, capacity = ?
		WHERE id = ?
	`, event.Name, event.Description, date, event.Location, event.Capacity, event.ID)
	if err != nil {
		return persistence.Event{}, r.mapper.MapError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.Event{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.Event{}, persistence.ErrNotFound
	}
	return event, nil
}

// DeleteByID removes the event together with its registrations. Deleting an
// unknown identifier is not an error.
func (r *EventRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM registration WHERE event_id = ?`, id); err != nil {
			return r.mapper.MapError(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id); err != nil {
			return r.mapper.MapError(err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (persistence.Event, error) {
	var (
		event persistence.Event
		date  string
	)
	if err := row.Scan(&event.ID, &event.Name, &event.Description, &date, &event.Location, &event.Capacity); err != nil {
		return persistence.Event{}, err
	}
	parsed, err := parseDate(date)
	if err != nil {
		return persistence.Event{}, fmt.Errorf("failed to parse date of event %d: %w", event.ID, err)
	}
	event.Date = parsed
	return event, nil
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.UTC)
}
