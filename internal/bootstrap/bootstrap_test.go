package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/event-registration/internal/testfixtures"
)

type app struct {
	handler http.Handler
	harness *testfixtures.SQLiteHarness
}

func newApp(t *testing.T) *app {
	t.Helper()

	harness := testfixtures.NewSQLiteHarness(t)
	handler, err := NewHandler(harness.Storage, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return &app{handler: handler, harness: harness}
}

func (a *app) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (a *app) post(t *testing.T, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestEndToEnd_CreateEvent(t *testing.T) {
	a := newApp(t)

	rec := a.post(t, "/events", "name=Conf&description=Annual&date=2025-06-01T09:00&location=Hall&capacity=100")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/events", rec.Header().Get("Location"))

	list := a.get(t, "/events")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Conf")
	assert.Contains(t, list.Body.String(), "0 / 100")
	assert.NotEmpty(t, list.Header().Get("X-Request-ID"))

	events, err := a.harness.Events.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Annual", events[0].Description)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), events[0].Date)
}

func TestEndToEnd_ValidationRejectsBlankName(t *testing.T) {
	a := newApp(t)

	rec := a.post(t, "/events", "name=&description=x&date=2025-06-01T09:00&location=Hall&capacity=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event name is required")

	events, err := a.harness.Events.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEndToEnd_ValidationRejectsOversizedCapacity(t *testing.T) {
	a := newApp(t)

	rec := a.post(t, "/events", "name=Conf&description=x&date=2025-06-01T09:00&location=Hall&capacity=99999999999999999999")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Capacity must be a non-negative whole number")

	events, err := a.harness.Events.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEndToEnd_EditFormKeepsSeconds(t *testing.T) {
	a := newApp(t)

	rec := a.post(t, "/events", "name=Conf&description=x&date=2025-06-01T09:00:30&location=Hall&capacity=10")
	require.Equal(t, http.StatusFound, rec.Code)

	events, err := a.harness.Events.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 30, events[0].Date.Second())

	edit := a.get(t, fmt.Sprintf("/events/edit/%d", events[0].ID))
	require.Equal(t, http.StatusOK, edit.Code)
	assert.Contains(t, edit.Body.String(), `value="2025-06-01T09:00:30"`)
}

func TestEndToEnd_UpdateUsesPathID(t *testing.T) {
	a := newApp(t)
	event := a.harness.SeedEvent(t, testfixtures.NewEventFixture())

	form := event.Form()
	form.Set("id", "999")
	form.Set("name", "Renamed")
	rec := a.post(t, fmt.Sprintf("/events/update/%d", event.ID), form.Encode())
	require.Equal(t, http.StatusFound, rec.Code)

	stored, err := a.harness.Events.FindByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)

	all, err := a.harness.Events.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	missing := a.post(t, "/events/update/999", form.Encode())
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestEndToEnd_RegistrationReferencesEvent(t *testing.T) {
	a := newApp(t)
	event := a.harness.SeedEvent(t, testfixtures.NewEventFixture(testfixtures.WithEventName("Gophercon")))

	body := url.Values{"name": {"Ada"}, "email": {"a@x.io"}, "event": {fmt.Sprint(event.ID)}}
	rec := a.post(t, "/registrations", body.Encode())
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/registrations", rec.Header().Get("Location"))

	list := a.get(t, "/registrations")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Ada")
	assert.Contains(t, list.Body.String(), "Gophercon")

	registrations, err := a.harness.Registrations.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, registrations, 1)
	assert.Equal(t, event.ID, registrations[0].Event.ID)
}

func TestEndToEnd_InvalidEmailRepopulatesEvents(t *testing.T) {
	a := newApp(t)
	event := a.harness.SeedEvent(t, testfixtures.NewEventFixture(testfixtures.WithEventName("Meetup")))

	body := url.Values{"name": {"Ada"}, "email": {"not-an-email"}, "event": {fmt.Sprint(event.ID)}}
	rec := a.post(t, "/registrations", body.Encode())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email should be valid")
	assert.Contains(t, rec.Body.String(), "Meetup")

	unknown := url.Values{"name": {"Ada"}, "email": {"a@x.io"}, "event": {"424242"}}
	rec = a.post(t, "/registrations", unknown.Encode())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Selected event does not exist")

	registrations, err := a.harness.Registrations.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, registrations)
}

func TestEndToEnd_DeleteIsIdempotentAndCascades(t *testing.T) {
	a := newApp(t)
	event := a.harness.SeedEvent(t, testfixtures.NewEventFixture())
	a.harness.SeedRegistration(t, testfixtures.NewRegistrationFixture(event.ID))

	target := fmt.Sprintf("/events/delete/%d", event.ID)
	first := a.get(t, target)
	second := a.get(t, target)
	assert.Equal(t, http.StatusFound, first.Code)
	assert.Equal(t, http.StatusFound, second.Code)
	assert.Equal(t, "/events", second.Header().Get("Location"))

	events, err := a.harness.Events.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
	registrations, err := a.harness.Registrations.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, registrations)
}

func TestEndToEnd_NotFoundAndHealth(t *testing.T) {
	a := newApp(t)

	rec := a.get(t, "/events/edit/12345")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error 404")

	health := a.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, health.Code)
}
