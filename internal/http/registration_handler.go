package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/event-registration/internal/application"
	"github.com/example/event-registration/internal/validation"
)

const registrationsPath = "/registrations"

type registrationService interface {
	ListRegistrations(ctx context.Context) ([]application.Registration, error)
	GetRegistration(ctx context.Context, id int64) (application.Registration, error)
	SaveRegistration(ctx context.Context, registration application.Registration) (application.Registration, error)
	DeleteRegistration(ctx context.Context, id int64) error
}

type eventCatalog interface {
	ListEvents(ctx context.Context) ([]application.Event, error)
	GetEvent(ctx context.Context, id int64) (application.Event, error)
}

// RegistrationHandler serves the registration pages.
type RegistrationHandler struct {
	service   registrationService
	events    eventCatalog
	validator *validation.Validator
	responder responder
	logger    *slog.Logger
}

// NewRegistrationHandler wires the registration pages.
func NewRegistrationHandler(service registrationService, events eventCatalog, renderer Renderer, validator *validation.Validator, logger *slog.Logger) *RegistrationHandler {
	base := defaultLogger(logger)
	if validator == nil {
		validator = validation.New()
	}
	return &RegistrationHandler{
		service:   service,
		events:    events,
		validator: validator,
		responder: newResponder(renderer, base),
		logger:    base,
	}
}

func (h *RegistrationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "RegistrationHandler", operation, attrs...)
}

// List renders every registration with its event.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	registrations, err := h.service.ListRegistrations(ctx)
	if err != nil {
		h.handleServiceError(ctx, w, "List", err)
		return
	}
	h.responder.render(ctx, w, http.StatusOK, ViewRegistrationList, Model{
		"registrations": registrations,
	})
}

// New renders a blank registration form with the event selector.
func (h *RegistrationHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(r.Context(), w, "New", application.Registration{}, validation.FieldErrors{})
}

// Create validates the submission, resolves its event and stores a new registration.
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "Create", 0)
}

// Edit renders the form populated with the stored registration.
func (h *RegistrationHandler) Edit(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	registration, err := h.service.GetRegistration(ctx, id)
	if err != nil {
		h.handleServiceError(ctx, w, "Edit", err)
		return
	}
	h.renderForm(ctx, w, "Edit", registration, validation.FieldErrors{})
}

// Update validates the submission and overwrites the registration named by the path.
func (h *RegistrationHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	h.save(w, r, "Update", id)
}

// Delete removes a registration. Unknown ids are ignored.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	if err := h.service.DeleteRegistration(ctx, id); err != nil {
		h.handleServiceError(ctx, w, "Delete", err)
		return
	}
	h.log(ctx, "Delete", "registration_id", id).InfoContext(ctx, "registration deleted")
	h.responder.redirect(w, r, registrationsPath)
}

func (h *RegistrationHandler) save(w http.ResponseWriter, r *http.Request, operation string, id int64) {
	ctx := r.Context()
	values, err := parseForm(r)
	if err != nil {
		h.log(ctx, operation, "error_kind", "bad_request").WarnContext(ctx, "failed to parse registration form", "error", err)
		h.responder.renderError(ctx, w, http.StatusBadRequest, "")
		return
	}

	form := bindRegistrationForm(values)
	registration := toRegistration(form)
	registration.ID = id

	errs := h.validator.Validate(form)
	if _, invalid := errs["event"]; !invalid {
		event, err := h.events.GetEvent(ctx, registration.Event.ID)
		switch {
		case errors.Is(err, application.ErrNotFound):
			errs.Add("event", validation.MessageUnknownEvent)
		case err != nil:
			h.handleServiceError(ctx, w, operation, err)
			return
		default:
			registration.Event = event
		}
	}

	if errs.HasErrors() {
		h.log(ctx, operation, "registration_id", id, "error_kind", "validation").InfoContext(ctx, "registration form rejected", "fields", len(errs))
		h.renderForm(ctx, w, operation, registration, errs)
		return
	}

	saved, err := h.service.SaveRegistration(ctx, registration)
	if errors.Is(err, application.ErrInvalidReference) {
		errs.Add("event", validation.MessageUnknownEvent)
		h.renderForm(ctx, w, operation, registration, errs)
		return
	}
	if err != nil {
		h.handleServiceError(ctx, w, operation, err)
		return
	}

	h.log(ctx, operation, "registration_id", saved.ID, "event_id", saved.Event.ID).InfoContext(ctx, "registration saved")
	h.responder.redirect(w, r, registrationsPath)
}

// renderForm always repopulates the event selector.
func (h *RegistrationHandler) renderForm(ctx context.Context, w http.ResponseWriter, operation string, registration application.Registration, errs validation.FieldErrors) {
	events, err := h.events.ListEvents(ctx)
	if err != nil {
		h.handleServiceError(ctx, w, operation, err)
		return
	}
	h.responder.render(ctx, w, http.StatusOK, ViewRegistrationForm, Model{
		"registration": registration,
		"events":       events,
		"errors":       errs,
	})
}

func (h *RegistrationHandler) handleServiceError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, application.ErrNotFound) {
		h.log(ctx, operation, "error_kind", application.ErrorKind(err)).InfoContext(ctx, "registration not found")
		h.responder.renderError(ctx, w, http.StatusNotFound, "")
		return
	}
	h.log(ctx, operation).ErrorContext(ctx, "registration request failed", "error", err, "error_kind", application.ErrorKind(err))
	h.responder.renderError(ctx, w, http.StatusInternalServerError, "")
}
