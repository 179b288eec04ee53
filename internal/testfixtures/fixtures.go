package testfixtures

import (
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/example/event-registration/internal/application"
	"github.com/example/event-registration/internal/persistence"
	"github.com/example/event-registration/internal/validation"
)

var (
	eventCounter        uint64
	registrationCounter uint64
)

var referenceTime = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Event fixtures -----------------------------

// EventFixture represents a deterministic event that can be materialised for
// application, persistence or HTTP form tests. ID stays zero until seeded.
type EventFixture struct {
	ID          int64
	Name        string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic event fixture with optional overrides.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	fixture := EventFixture{
		Name:        fmt.Sprintf("Event %03d", idx),
		Description: fmt.Sprintf("Description of event %03d", idx),
		Date:        referenceTime.Add(time.Duration(idx) * 24 * time.Hour),
		Location:    "Hall A",
		Capacity:    50,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventName overrides the generated name.
func WithEventName(name string) EventOption {
	return func(f *EventFixture) {
		f.Name = name
	}
}

// WithEventDate overrides the generated date.
func WithEventDate(t time.Time) EventOption {
	return func(f *EventFixture) {
		f.Date = t
	}
}

// WithEventLocation overrides the generated location.
func WithEventLocation(location string) EventOption {
	return func(f *EventFixture) {
		f.Location = location
	}
}

// WithEventCapacity overrides the generated capacity.
func WithEventCapacity(capacity int) EventOption {
	return func(f *EventFixture) {
		f.Capacity = capacity
	}
}

// Application returns the fixture as an application.Event value.
func (f EventFixture) Application() application.Event {
	return application.Event{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Date:        f.Date,
		Location:    f.Location,
		Capacity:    f.Capacity,
	}
}

// Persistence returns the fixture as a persistence.Event value.
func (f EventFixture) Persistence() persistence.Event {
	return persistence.Event{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Date:        f.Date,
		Location:    f.Location,
		Capacity:    f.Capacity,
	}
}

// Form returns the fixture encoded as an event form submission.
func (f EventFixture) Form() url.Values {
	return url.Values{
		"name":        {f.Name},
		"description": {f.Description},
		"date":        {validation.FormatDate(f.Date)},
		"location":    {f.Location},
		"capacity":    {strconv.Itoa(f.Capacity)},
	}
}

// ------------------------- Registration fixtures --------------------------

// RegistrationFixture represents a deterministic registration for one event.
type RegistrationFixture struct {
	ID      int64
	Name    string
	Email   string
	EventID int64
}

// RegistrationOption configures the generated registration fixture.
type RegistrationOption func(*RegistrationFixture)

// NewRegistrationFixture returns a deterministic registration for eventID.
func NewRegistrationFixture(eventID int64, opts ...RegistrationOption) RegistrationFixture {
	idx := atomic.AddUint64(&registrationCounter, 1)
	fixture := RegistrationFixture{
		Name:    fmt.Sprintf("Attendee %03d", idx),
		Email:   fmt.Sprintf("attendee-%03d@example.com", idx),
		EventID: eventID,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRegistrationName overrides the generated name.
func WithRegistrationName(name string) RegistrationOption {
	return func(f *RegistrationFixture) {
		f.Name = name
	}
}

// WithRegistrationEmail overrides the generated email address.
func WithRegistrationEmail(email string) RegistrationOption {
	return func(f *RegistrationFixture) {
		f.Email = email
	}
}

// Application returns the fixture as an application.Registration with only the event id set.
func (f RegistrationFixture) Application() application.Registration {
	return application.Registration{
		ID:    f.ID,
		Name:  f.Name,
		Email: f.Email,
		Event: application.Event{ID: f.EventID},
	}
}

// Persistence returns the fixture as a persistence.Registration with only the event id set.
func (f RegistrationFixture) Persistence() persistence.Registration {
	return persistence.Registration{
		ID:    f.ID,
		Name:  f.Name,
		Email: f.Email,
		Event: persistence.Event{ID: f.EventID},
	}
}

// Form returns the fixture encoded as a registration form submission.
func (f RegistrationFixture) Form() url.Values {
	return url.Values{
		"name":  {f.Name},
		"email": {f.Email},
		"event": {strconv.FormatInt(f.EventID, 10)},
	}
}
