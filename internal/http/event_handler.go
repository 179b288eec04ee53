package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/event-registration/internal/application"
	"github.com/example/event-registration/internal/validation"
)

const eventsPath = "/events"

type eventService interface {
	ListEvents(ctx context.Context) ([]application.Event, error)
	GetEvent(ctx context.Context, id int64) (application.Event, error)
	SaveEvent(ctx context.Context, event application.Event) (application.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

type registrationCounter interface {
	CountByEvent(ctx context.Context) (map[int64]int, error)
}

// EventHandler serves the event pages.
type EventHandler struct {
	service   eventService
	counts    registrationCounter
	validator *validation.Validator
	responder responder
	logger    *slog.Logger
	now       func() time.Time
}

// NewEventHandler wires the event pages. counts may be nil, in which case the
// listing shows no registration totals.
func NewEventHandler(service eventService, counts registrationCounter, renderer Renderer, validator *validation.Validator, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	if validator == nil {
		validator = validation.New()
	}
	return &EventHandler{
		service:   service,
		counts:    counts,
		validator: validator,
		responder: newResponder(renderer, base),
		logger:    base,
		now:       time.Now,
	}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

// List renders every event together with its registration count and the
// listing totals.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	events, err := h.service.ListEvents(ctx)
	if err != nil {
		h.log(ctx, "List").ErrorContext(ctx, "failed to list events", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.renderError(ctx, w, http.StatusInternalServerError, "")
		return
	}

	counts := map[int64]int{}
	if h.counts != nil {
		counts, err = h.counts.CountByEvent(ctx)
		if err != nil {
			h.log(ctx, "List").ErrorContext(ctx, "failed to count registrations", "error", err, "error_kind", application.ErrorKind(err))
			h.responder.renderError(ctx, w, http.StatusInternalServerError, "")
			return
		}
	}

	h.responder.render(ctx, w, http.StatusOK, ViewEventList, Model{
		"events":             events,
		"registrationCounts": counts,
		"summary":            summarizeEvents(events, counts, h.now()),
	})
}

// New renders a blank event form.
func (h *EventHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(r.Context(), w, application.Event{}, validation.FieldErrors{})
}

// Create validates the submission and stores a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "Create", 0)
}

// Edit renders the form populated with the stored event.
func (h *EventHandler) Edit(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	event, err := h.service.GetEvent(ctx, id)
	if err != nil {
		h.handleServiceError(ctx, w, "Edit", err)
		return
	}
	h.renderForm(ctx, w, event, validation.FieldErrors{})
}

// Update validates the submission and overwrites the event named by the path.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	h.save(w, r, "Update", id)
}

// Delete removes the event and its registrations. Unknown ids are ignored.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()
	if err := h.service.DeleteEvent(ctx, id); err != nil {
		h.handleServiceError(ctx, w, "Delete", err)
		return
	}
	h.log(ctx, "Delete", "event_id", id).InfoContext(ctx, "event deleted")
	h.responder.redirect(w, r, eventsPath)
}

func (h *EventHandler) save(w http.ResponseWriter, r *http.Request, operation string, id int64) {
	ctx := r.Context()
	values, err := parseForm(r)
	if err != nil {
		h.log(ctx, operation, "error_kind", "bad_request").WarnContext(ctx, "failed to parse event form", "error", err)
		h.responder.renderError(ctx, w, http.StatusBadRequest, "")
		return
	}

	form := bindEventForm(values)
	event := toEvent(form)
	event.ID = id

	if errs := h.validator.Validate(form); errs.HasErrors() {
		h.log(ctx, operation, "event_id", id, "error_kind", "validation").InfoContext(ctx, "event form rejected", "fields", len(errs))
		h.renderForm(ctx, w, event, errs)
		return
	}

	saved, err := h.service.SaveEvent(ctx, event)
	if err != nil {
		h.handleServiceError(ctx, w, operation, err)
		return
	}

	h.log(ctx, operation, "event_id", saved.ID).InfoContext(ctx, "event saved")
	h.responder.redirect(w, r, eventsPath)
}

func (h *EventHandler) renderForm(ctx context.Context, w http.ResponseWriter, event application.Event, errs validation.FieldErrors) {
	h.responder.render(ctx, w, http.StatusOK, ViewEventForm, Model{
		"event":  event,
		"errors": errs,
	})
}

func (h *EventHandler) handleServiceError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, application.ErrNotFound) {
		h.log(ctx, operation, "error_kind", application.ErrorKind(err)).InfoContext(ctx, "event not found")
		h.responder.renderError(ctx, w, http.StatusNotFound, "")
		return
	}
	h.log(ctx, operation).ErrorContext(ctx, "event request failed", "error", err, "error_kind", application.ErrorKind(err))
	h.responder.renderError(ctx, w, http.StatusInternalServerError, "")
}
