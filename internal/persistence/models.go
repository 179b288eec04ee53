package persistence

import "time"

// Event represents a row of the event table.
type Event struct {
	ID          int64
	Name        string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
}

// Registration represents a row of the registration table joined with the
// event it references.
type Registration struct {
	ID    int64
	Name  string
	Email string
	Event Event
}
