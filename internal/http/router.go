package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// resourceHandler is the page lifecycle shared by events and registrations.
type resourceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	New(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request, id int64)
	Update(w http.ResponseWriter, r *http.Request, id int64)
	Delete(w http.ResponseWriter, r *http.Request, id int64)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Events        *EventHandler
	Registrations *RegistrationHandler
	Health        Pinger
	Renderer      Renderer
	Logger        *slog.Logger
	Middleware    []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	responder := newResponder(cfg.Renderer, cfg.Logger)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			responder.notFound(w, r)
			return
		}
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		responder.redirect(w, r, eventsPath)
	})

	if cfg.Events != nil {
		mountResource(mux, eventsPath, cfg.Events, responder)
	}
	if cfg.Registrations != nil {
		mountResource(mux, registrationsPath, cfg.Registrations, responder)
	}

	if cfg.Health != nil {
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if !allowMethod(w, r, http.MethodGet) {
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			if err := cfg.Health.Ping(r.Context()); err != nil {
				responder.loggerFor(r.Context()).ErrorContext(r.Context(), "health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable\n"))
				return
			}
			_, _ = w.Write([]byte("ok\n"))
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

// mountResource registers base and base/{new,edit/{id},update/{id},delete/{id}}.
func mountResource(mux *http.ServeMux, base string, h resourceHandler, responder responder) {
	mux.HandleFunc(base, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.List(w, r)
		case http.MethodPost:
			h.Create(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc(base+"/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, base+"/")
		if rest == "" {
			http.Redirect(w, r, base, http.StatusMovedPermanently)
			return
		}
		if rest == "new" {
			if !allowMethod(w, r, http.MethodGet) {
				return
			}
			h.New(w, r)
			return
		}

		action, rawID, found := strings.Cut(rest, "/")
		if !found {
			responder.notFound(w, r)
			return
		}
		id, ok := parseID(rawID)

		switch action {
		case "edit":
			if !ok {
				responder.notFound(w, r)
				return
			}
			if allowMethod(w, r, http.MethodGet) {
				h.Edit(w, r, id)
			}
		case "update":
			if !ok {
				responder.notFound(w, r)
				return
			}
			if allowMethod(w, r, http.MethodPost) {
				h.Update(w, r, id)
			}
		case "delete":
			if !ok {
				responder.notFound(w, r)
				return
			}
			if allowMethod(w, r, http.MethodGet) {
				h.Delete(w, r, id)
			}
		default:
			responder.notFound(w, r)
		}
	})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	methodNotAllowed(w, method)
	return false
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
