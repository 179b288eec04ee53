package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
)

type responder struct {
	renderer Renderer
	logger   *slog.Logger
}

func newResponder(renderer Renderer, logger *slog.Logger) responder {
	return responder{renderer: renderer, logger: defaultLogger(logger)}
}

// render buffers the view so template failures still produce a clean 500.
func (r responder) render(ctx context.Context, w http.ResponseWriter, status int, view string, model Model) {
	if r.renderer == nil {
		r.loggerFor(ctx).ErrorContext(ctx, "renderer not configured", "view", view)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, view, model); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to render view", "view", view, "error", err)
		if view == ViewError {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		r.renderError(ctx, w, http.StatusInternalServerError, "")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.loggerFor(ctx).WarnContext(ctx, "failed to write response", "view", view, "error", err)
	}
}

func (r responder) renderError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = statusMessage(status)
	}
	r.render(ctx, w, status, ViewError, Model{
		"status":  status,
		"message": message,
	})
}

func (r responder) redirect(w http.ResponseWriter, req *http.Request, location string) {
	http.Redirect(w, req, location, http.StatusFound)
}

func (r responder) notFound(w http.ResponseWriter, req *http.Request) {
	r.renderError(req.Context(), w, http.StatusNotFound, "")
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "The submitted form could not be read."
	case http.StatusNotFound:
		return "The requested page could not be found."
	case http.StatusMethodNotAllowed:
		return "This action is not supported for the requested page."
	default:
		return "Something went wrong while processing your request."
	}
}
