package application

import "time"

// Event is a scheduled occurrence registrations can be placed against.
type Event struct {
	ID          int64
	Name        string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
}

// IsNew reports whether the event has not been stored yet.
func (e Event) IsNew() bool {
	return e.ID == 0
}

// Registration is an attendee's intent to attend exactly one event.
type Registration struct {
	ID    int64
	Name  string
	Email string
	Event Event
}

// IsNew reports whether the registration has not been stored yet.
func (r Registration) IsNew() bool {
	return r.ID == 0
}
