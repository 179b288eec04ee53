// Package bootstrap assembles the storage, services and HTTP handlers into a
// ready to serve http.Handler.
package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/example/event-registration/internal/application"
	httptransport "github.com/example/event-registration/internal/http"
	"github.com/example/event-registration/internal/persistence/sqlite"
	"github.com/example/event-registration/internal/validation"
)

// NewHandler wires every page of the admin interface on top of storage.
// A nil renderer selects the embedded templates.
func NewHandler(storage *sqlite.Storage, renderer httptransport.Renderer, logger *slog.Logger) (http.Handler, error) {
	if storage == nil {
		return nil, fmt.Errorf("bootstrap: storage is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		templates, err := httptransport.NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		renderer = templates
	}

	eventService := application.NewEventServiceWithLogger(newEventRepositoryAdapter(storage.Events()), logger)
	registrationService := application.NewRegistrationServiceWithLogger(newRegistrationRepositoryAdapter(storage.Registrations()), logger)
	validator := validation.New()

	eventHandler := httptransport.NewEventHandler(eventService, registrationService, renderer, validator, logger)
	registrationHandler := httptransport.NewRegistrationHandler(registrationService, eventService, renderer, validator, logger)

	return httptransport.NewRouter(httptransport.RouterConfig{
		Events:        eventHandler,
		Registrations: registrationHandler,
		Health:        storage,
		Renderer:      renderer,
		Logger:        logger,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.Recoverer(renderer, logger),
		},
	}), nil
}
