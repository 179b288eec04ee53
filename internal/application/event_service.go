package application

import (
	"context"
	"fmt"
	"log/slog"
)

// EventRepository captures the persistence operations needed by the event service.
type EventRepository interface {
	FindAll(ctx context.Context) ([]Event, error)
	FindByID(ctx context.Context, id int64) (Event, error)
	Save(ctx context.Context, event Event) (Event, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EventService mediates between the event handler and the event repository.
type EventService struct {
	events EventRepository
	logger *slog.Logger
}

// NewEventService constructs an event service with the provided repository.
func NewEventService(events EventRepository) *EventService {
	return NewEventServiceWithLogger(events, nil)
}

// NewEventServiceWithLogger constructs an event service with a specified logger.
func NewEventServiceWithLogger(events EventRepository, logger *slog.Logger) *EventService {
	return &EventService{events: events, logger: defaultLogger(logger)}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// ListEvents returns every stored event.
func (s *EventService) ListEvents(ctx context.Context) (events []Event, err error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}

	logger := s.loggerWith(ctx, "ListEvents")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list events", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "events listed", "result_count", len(events))
	}()

	events, err = s.events.FindAll(ctx)
	if err != nil {
		err = mapRepoError(err)
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// GetEvent retrieves a single event, returning ErrNotFound when it does not exist.
func (s *EventService) GetEvent(ctx context.Context, id int64) (event Event, err error) {
	if s == nil || s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}

	logger := s.loggerWith(ctx, "GetEvent", "event_id", id)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "failed to get event", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	event, err = s.events.FindByID(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return Event{}, err
	}
	return event, nil
}

// SaveEvent inserts a new event or overwrites an existing one. Input is expected
// to be validated by the caller.
func (s *EventService) SaveEvent(ctx context.Context, event Event) (saved Event, err error) {
	if s == nil || s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}

	logger := s.loggerWith(ctx, "SaveEvent", "event_id", event.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", saved.ID).InfoContext(ctx, "event saved")
	}()

	saved, err = s.events.Save(ctx, event)
	if err != nil {
		err = mapRepoError(err)
		return Event{}, err
	}
	return saved, nil
}

// DeleteEvent removes an event and its registrations. Unknown identifiers are ignored.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) (err error) {
	if s == nil || s.events == nil {
		return fmt.Errorf("event repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteEvent", "event_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event deleted")
	}()

	if err = s.events.DeleteByID(ctx, id); err != nil {
		err = mapRepoError(err)
		return err
	}
	return nil
}
