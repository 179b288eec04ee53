package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/example/event-registration/internal/application"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type renderCall struct {
	view  string
	model Model
}

type recordingRenderer struct {
	mu    sync.Mutex
	calls []renderCall
	err   error
}

func (r *recordingRenderer) Render(w io.Writer, view string, model Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil && view != ViewError {
		return r.err
	}
	r.calls = append(r.calls, renderCall{view: view, model: model})
	_, err := fmt.Fprintf(w, "view=%s", view)
	return err
}

func (r *recordingRenderer) last() renderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return renderCall{}
	}
	return r.calls[len(r.calls)-1]
}

type memoryEvents struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]application.Event
	err    error
}

func newMemoryEvents(seed ...application.Event) *memoryEvents {
	m := &memoryEvents{events: map[int64]application.Event{}}
	for _, event := range seed {
		m.events[event.ID] = event
		if event.ID > m.nextID {
			m.nextID = event.ID
		}
	}
	return m
}

func (m *memoryEvents) ListEvents(ctx context.Context) ([]application.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]int64, 0, len(m.events))
	for id := range m.events {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	events := make([]application.Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, m.events[id])
	}
	return events, nil
}

func (m *memoryEvents) GetEvent(ctx context.Context, id int64) (application.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return application.Event{}, application.ErrNotFound
	}
	return event, nil
}

func (m *memoryEvents) SaveEvent(ctx context.Context, event application.Event) (application.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return application.Event{}, m.err
	}
	if event.ID == 0 {
		m.nextID++
		event.ID = m.nextID
	} else if _, ok := m.events[event.ID]; !ok {
		return application.Event{}, application.ErrNotFound
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *memoryEvents) DeleteEvent(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.events, id)
	return nil
}

type memoryRegistrations struct {
	mu            sync.Mutex
	nextID        int64
	registrations map[int64]application.Registration
	saveErr       error
}

func newMemoryRegistrations() *memoryRegistrations {
	return &memoryRegistrations{registrations: map[int64]application.Registration{}}
}

func (m *memoryRegistrations) ListRegistrations(ctx context.Context) ([]application.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]application.Registration, 0, len(m.registrations))
	for _, registration := range m.registrations {
		list = append(list, registration)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *memoryRegistrations) GetRegistration(ctx context.Context, id int64) (application.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	registration, ok := m.registrations[id]
	if !ok {
		return application.Registration{}, application.ErrNotFound
	}
	return registration, nil
}

func (m *memoryRegistrations) SaveRegistration(ctx context.Context, registration application.Registration) (application.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return application.Registration{}, m.saveErr
	}
	if registration.ID == 0 {
		m.nextID++
		registration.ID = m.nextID
	} else if _, ok := m.registrations[registration.ID]; !ok {
		return application.Registration{}, application.ErrNotFound
	}
	m.registrations[registration.ID] = registration
	return registration, nil
}

func (m *memoryRegistrations) DeleteRegistration(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.registrations, id)
	return nil
}

func (m *memoryRegistrations) CountByEvent(ctx context.Context) (map[int64]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[int64]int{}
	for _, registration := range m.registrations {
		counts[registration.Event.ID]++
	}
	return counts, nil
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
