package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/event-registration/internal/persistence"
)

type registrationRepoStub struct {
	list    []Registration
	listErr error

	get    Registration
	getErr error

	saveErr error
	saved   Registration

	deletedID int64

	counts    map[int64]int
	countsErr error
}

func (r *registrationRepoStub) FindAll(ctx context.Context) ([]Registration, error) {
	return r.list, r.listErr
}

func (r *registrationRepoStub) FindByID(ctx context.Context, id int64) (Registration, error) {
	if r.getErr != nil {
		return Registration{}, r.getErr
	}
	if r.get.ID != id {
		return Registration{}, persistence.ErrNotFound
	}
	return r.get, nil
}

func (r *registrationRepoStub) Save(ctx context.Context, registration Registration) (Registration, error) {
	if r.saveErr != nil {
		return Registration{}, r.saveErr
	}
	if registration.ID == 0 {
		registration.ID = 1
	}
	r.saved = registration
	return registration, nil
}

func (r *registrationRepoStub) DeleteByID(ctx context.Context, id int64) error {
	r.deletedID = id
	return nil
}

func (r *registrationRepoStub) CountByEvent(ctx context.Context) (map[int64]int, error) {
	return r.counts, r.countsErr
}

func TestRegistrationService_SaveRegistration(t *testing.T) {
	t.Parallel()

	t.Run("stores registration", func(t *testing.T) {
		repo := &registrationRepoStub{}
		svc := NewRegistrationService(repo)

		saved, err := svc.SaveRegistration(context.Background(), Registration{
			Name:  "Ada",
			Email: "a@x.io",
			Event: Event{ID: 3},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.ID != 1 || repo.saved.Event.ID != 3 {
			t.Fatalf("unexpected save result: %#v", saved)
		}
	})

	t.Run("maps constraint violation to invalid reference", func(t *testing.T) {
		svc := NewRegistrationService(&registrationRepoStub{saveErr: persistence.ErrConstraintViolation})
		_, err := svc.SaveRegistration(context.Background(), Registration{Name: "Ada", Event: Event{ID: 99}})
		if !errors.Is(err, ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
	})
}

func TestRegistrationService_Reads(t *testing.T) {
	t.Parallel()

	repo := &registrationRepoStub{
		get:    Registration{ID: 5, Name: "Ada"},
		counts: nil,
	}
	svc := NewRegistrationService(repo)

	list, err := svc.ListRegistrations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list == nil {
		t.Fatalf("expected non-nil empty list")
	}

	if _, err := svc.GetRegistration(context.Background(), 6); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	counts, err := svc.CountByEvent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts == nil {
		t.Fatalf("expected non-nil counts map")
	}

	if err := svc.DeleteRegistration(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedID != 5 {
		t.Fatalf("expected delete of 5, got %d", repo.deletedID)
	}
}
