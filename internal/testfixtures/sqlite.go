package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/event-registration/internal/persistence"
	"github.com/example/event-registration/internal/persistence/sqlite"
	"github.com/example/event-registration/internal/persistence/sqlite/migration"
)

// SQLiteHarness provides repository access backed by a temporary SQLite storage
// instance for integration-style tests.
type SQLiteHarness struct {
	Storage       *sqlite.Storage
	Events        persistence.EventRepository
	Registrations persistence.RegistrationRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "eventreg.db")

	storage, err := sqlite.Open(context.Background(), migration.TempFileTestSQLiteConfig(path), nil)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Storage:       storage,
		Events:        storage.Events(),
		Registrations: storage.Registrations(),
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// SeedEvent stores the fixture and returns it with the generated identifier.
func (h *SQLiteHarness) SeedEvent(tb testing.TB, fixture EventFixture) EventFixture {
	tb.Helper()

	stored, err := h.Events.Save(context.Background(), fixture.Persistence())
	if err != nil {
		tb.Fatalf("failed to seed event: %v", err)
	}
	fixture.ID = stored.ID
	return fixture
}

// SeedRegistration stores the fixture against eventID and returns it with the generated identifier.
func (h *SQLiteHarness) SeedRegistration(tb testing.TB, fixture RegistrationFixture) RegistrationFixture {
	tb.Helper()

	stored, err := h.Registrations.Save(context.Background(), fixture.Persistence())
	if err != nil {
		tb.Fatalf("failed to seed registration: %v", err)
	}
	fixture.ID = stored.ID
	return fixture
}
