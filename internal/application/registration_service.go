package application

import (
	"context"
	"fmt"
	"log/slog"
)

// RegistrationRepository captures the persistence operations needed by the registration service.
type RegistrationRepository interface {
	FindAll(ctx context.Context) ([]Registration, error)
	FindByID(ctx context.Context, id int64) (Registration, error)
	Save(ctx context.Context, registration Registration) (Registration, error)
	DeleteByID(ctx context.Context, id int64) error
	CountByEvent(ctx context.Context) (map[int64]int, error)
}

// RegistrationService mediates between the registration handler and the registration repository.
type RegistrationService struct {
	registrations RegistrationRepository
	logger        *slog.Logger
}

// NewRegistrationService constructs a registration service with the provided repository.
func NewRegistrationService(registrations RegistrationRepository) *RegistrationService {
	return NewRegistrationServiceWithLogger(registrations, nil)
}

// NewRegistrationServiceWithLogger constructs a registration service with a specified logger.
func NewRegistrationServiceWithLogger(registrations RegistrationRepository, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{registrations: registrations, logger: defaultLogger(logger)}
}

func (s *RegistrationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RegistrationService", operation, attrs...)
}

func (s *RegistrationService) configured() error {
	if s == nil || s.registrations == nil {
		return fmt.Errorf("registration repository not configured")
	}
	return nil
}

// ListRegistrations returns every registration with its event resolved.
func (s *RegistrationService) ListRegistrations(ctx context.Context) (registrations []Registration, err error) {
	if err = s.configured(); err != nil {
		return nil, err
	}

	logger := s.loggerWith(ctx, "ListRegistrations")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list registrations", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "registrations listed", "result_count", len(registrations))
	}()

	registrations, err = s.registrations.FindAll(ctx)
	if err != nil {
		err = mapRepoError(err)
		return nil, err
	}
	if registrations == nil {
		registrations = []Registration{}
	}
	return registrations, nil
}

// GetRegistration retrieves a single registration, returning ErrNotFound when it does not exist.
func (s *RegistrationService) GetRegistration(ctx context.Context, id int64) (registration Registration, err error) {
	if err = s.configured(); err != nil {
		return Registration{}, err
	}

	logger := s.loggerWith(ctx, "GetRegistration", "registration_id", id)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "failed to get registration", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	registration, err = s.registrations.FindByID(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return Registration{}, err
	}
	return registration, nil
}

// SaveRegistration inserts a new registration or overwrites an existing one.
// ErrInvalidReference is returned when the referenced event no longer exists.
func (s *RegistrationService) SaveRegistration(ctx context.Context, registration Registration) (saved Registration, err error) {
	if err = s.configured(); err != nil {
		return Registration{}, err
	}

	logger := s.loggerWith(ctx, "SaveRegistration",
		"registration_id", registration.ID,
		"event_id", registration.Event.ID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save registration", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("registration_id", saved.ID).InfoContext(ctx, "registration saved")
	}()

	saved, err = s.registrations.Save(ctx, registration)
	if err != nil {
		err = mapRepoError(err)
		return Registration{}, err
	}
	return saved, nil
}

// DeleteRegistration removes a registration. Unknown identifiers are ignored.
func (s *RegistrationService) DeleteRegistration(ctx context.Context, id int64) (err error) {
	if err = s.configured(); err != nil {
		return err
	}

	logger := s.loggerWith(ctx, "DeleteRegistration", "registration_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete registration", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "registration deleted")
	}()

	if err = s.registrations.DeleteByID(ctx, id); err != nil {
		err = mapRepoError(err)
		return err
	}
	return nil
}

// CountByEvent returns the number of registrations placed against each event.
func (s *RegistrationService) CountByEvent(ctx context.Context) (counts map[int64]int, err error) {
	if err = s.configured(); err != nil {
		return nil, err
	}

	logger := s.loggerWith(ctx, "CountByEvent")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to count registrations", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	counts, err = s.registrations.CountByEvent(ctx)
	if err != nil {
		err = mapRepoError(err)
		return nil, err
	}
	if counts == nil {
		counts = map[int64]int{}
	}
	return counts, nil
}
