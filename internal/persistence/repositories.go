package persistence

import "context"

// EventRepository stores events keyed by a store-generated identifier.
//
// Save inserts when the ID is zero and overwrites the row with that ID
// otherwise. DeleteByID succeeds when no row matches.
type EventRepository interface {
	FindAll(ctx context.Context) ([]Event, error)
	FindByID(ctx context.Context, id int64) (Event, error)
	Save(ctx context.Context, event Event) (Event, error)
	DeleteByID(ctx context.Context, id int64) error
}

// RegistrationRepository stores registrations and resolves their event reference.
type RegistrationRepository interface {
	FindAll(ctx context.Context) ([]Registration, error)
	FindByID(ctx context.Context, id int64) (Registration, error)
	Save(ctx context.Context, registration Registration) (Registration, error)
	DeleteByID(ctx context.Context, id int64) error
	CountByEvent(ctx context.Context) (map[int64]int, error)
}
