package bootstrap

import (
	"context"

	"github.com/example/event-registration/internal/application"
	"github.com/example/event-registration/internal/persistence"
)

type eventRepositoryAdapter struct {
	repo persistence.EventRepository
}

func newEventRepositoryAdapter(repo persistence.EventRepository) *eventRepositoryAdapter {
	return &eventRepositoryAdapter{repo: repo}
}

func (a *eventRepositoryAdapter) FindAll(ctx context.Context) ([]application.Event, error) {
	models, err := a.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]application.Event, 0, len(models))
	for _, model := range models {
		events = append(events, toApplicationEvent(model))
	}
	return events, nil
}

func (a *eventRepositoryAdapter) FindByID(ctx context.Context, id int64) (application.Event, error) {
	stored, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return application.Event{}, err
	}
	return toApplicationEvent(stored), nil
}

func (a *eventRepositoryAdapter) Save(ctx context.Context, event application.Event) (application.Event, error) {
	stored, err := a.repo.Save(ctx, toPersistenceEvent(event))
	if err != nil {
		return application.Event{}, err
	}
	return toApplicationEvent(stored), nil
}

func (a *eventRepositoryAdapter) DeleteByID(ctx context.Context, id int64) error {
	return a.repo.DeleteByID(ctx, id)
}

type registrationRepositoryAdapter struct {
	repo persistence.RegistrationRepository
}

func newRegistrationRepositoryAdapter(repo persistence.RegistrationRepository) *registrationRepositoryAdapter {
	return &registrationRepositoryAdapter{repo: repo}
}

func (a *registrationRepositoryAdapter) FindAll(ctx context.Context) ([]application.Registration, error) {
	models, err := a.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	registrations := make([]application.Registration, 0, len(models))
	for _, model := range models {
		registrations = append(registrations, toApplicationRegistration(model))
	}
	return registrations, nil
}

func (a *registrationRepositoryAdapter) FindByID(ctx context.Context, id int64) (application.Registration, error) {
	stored, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return application.Registration{}, err
	}
	return toApplicationRegistration(stored), nil
}

func (a *registrationRepositoryAdapter) Save(ctx context.Context, registration application.Registration) (application.Registration, error) {
	stored, err := a.repo.Save(ctx, persistence.Registration{
		ID:    registration.ID,
		Name:  registration.Name,
		Email: registration.Email,
		Event: toPersistenceEvent(registration.Event),
	})
	if err != nil {
		return application.Registration{}, err
	}
	return toApplicationRegistration(stored), nil
}

func (a *registrationRepositoryAdapter) DeleteByID(ctx context.Context, id int64) error {
	return a.repo.DeleteByID(ctx, id)
}

func (a *registrationRepositoryAdapter) CountByEvent(ctx context.Context) (map[int64]int, error) {
	return a.repo.CountByEvent(ctx)
}

func toApplicationEvent(model persistence.Event) application.Event {
	return application.Event{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Date:        model.Date,
		Location:    model.Location,
		Capacity:    model.Capacity,
	}
}

func toPersistenceEvent(event application.Event) persistence.Event {
	return persistence.Event{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		Capacity:    event.Capacity,
	}
}

func toApplicationRegistration(model persistence.Registration) application.Registration {
	return application.Registration{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
		Event: toApplicationEvent(model.Event),
	}
}
