package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/event-registration/internal/persistence"
)

const registrationSelect = `
	SELECT r.id, r.name, r.email,
	       e.id, e.name, e.description, e.date, e.location, e.capacity
	FROM registration r
	JOIN event e ON e.id = r.event_id
`

// RegistrationRepository implements persistence.RegistrationRepository using SQLite
type RegistrationRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewRegistrationRepository creates a new SQLite registration repository
func NewRegistrationRepository(pool *ConnectionPool) *RegistrationRepository {
	return &RegistrationRepository{
		pool:   pool,
		mapper: NewErrorMapper(),
	}
}

// FindAll returns every registration with its event resolved, ordered by identifier.
func (r *RegistrationRepository) FindAll(ctx context.Context) ([]persistence.Registration, error) {
	rows, err := r.pool.DB().QueryContext(ctx, registrationSelect+` ORDER BY r.id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	registrations := make([]persistence.Registration, 0)
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return registrations, nil
}

// FindByID retrieves a single registration.
func (r *RegistrationRepository) FindByID(ctx context.Context, id int64) (persistence.Registration, error) {
	row := r.pool.DB().QueryRowContext(ctx, registrationSelect+` WHERE r.id = ?`, id)
	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Registration{}, persistence.ErrNotFound
		}
		return persistence.Registration{}, r.mapper.MapError(err)
	}
	return registration, nil
}

// Save inserts or overwrites the registration. Only the event identifier of the
// embedded event is written; the returned value carries the stored event.
func (r *RegistrationRepository) Save(ctx context.Context, registration persistence.Registration) (persistence.Registration, error) {
	id := registration.ID
	if id == 0 {
		result, err := r.pool.DB().ExecContext(ctx, `
			INSERT INTO registration (name, email, event_id)
			VALUES (?, ?, ?)
		`, registration.Name, registration.Email, registration.Event.ID)
		if err != nil {
			return persistence.Registration{}, r.mapper.MapError(err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return persistence.Registration{}, fmt.Errorf("failed to read inserted registration id: %w", err)
		}
	} else {
		result, err := r.pool.DB().ExecContext(ctx, `
			UPDATE registration
			SET name = ?, email = ?, event_id = ?
			WHERE id = ?
		`, registration.Name, registration.Email, registration.Event.ID, id)
		if err != nil {
			return persistence.Registration{}, r.mapper.MapError(err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return persistence.Registration{}, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return persistence.Registration{}, persistence.ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// DeleteByID removes a registration. Deleting an unknown identifier is not an error.
func (r *RegistrationRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.pool.DB().ExecContext(ctx, `DELETE FROM registration WHERE id = ?`, id); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// CountByEvent returns the number of registrations per event identifier. Events
// without registrations are absent from the map.
func (r *RegistrationRepository) CountByEvent(ctx context.Context) (map[int64]int, error) {
	rows, err := r.pool.DB().QueryContext(ctx, `SELECT event_id, COUNT(*) FROM registration GROUP BY event_id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			eventID int64
			count   int
		)
		if err := rows.Scan(&eventID, &count); err != nil {
			return nil, r.mapper.MapError(err)
		}
		counts[eventID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return counts, nil
}

func scanRegistration(row rowScanner) (persistence.Registration, error) {
	var (
		registration persistence.Registration
		date         string
	)
	err := row.Scan(
		&registration.ID,
		&registration.Name,
		&registration.Email,
		&registration.Event.ID,
		&registration.Event.Name,
		&registration.Event.Description,
		&date,
		&registration.Event.Location,
		&registration.Event.Capacity,
	)
	if err != nil {
		return persistence.Registration{}, err
	}
	parsed, err := parseDate(date)
	if err != nil {
		return persistence.Registration{}, fmt.Errorf("failed to parse date of event %d: %w", registration.Event.ID, err)
	}
	registration.Event.Date = parsed
	return registration, nil
}
