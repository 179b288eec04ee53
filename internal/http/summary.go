package http

import (
	"time"

	"github.com/example/event-registration/internal/application"
)

// eventSummary holds the totals shown above the event listing.
type eventSummary struct {
	TotalEvents        int
	TotalRegistrations int
	UpcomingEvents     int
	// Booked and capacity only count events that declare a capacity.
	CapacityBooked int
	CapacityTotal  int
}

// CapacityUsedPercent is CapacityBooked as a whole percentage of CapacityTotal.
func (s eventSummary) CapacityUsedPercent() int {
	if s.CapacityTotal == 0 {
		return 0
	}
	return s.CapacityBooked * 100 / s.CapacityTotal
}

func summarizeEvents(events []application.Event, counts map[int64]int, now time.Time) eventSummary {
	summary := eventSummary{TotalEvents: len(events)}
	for _, event := range events {
		registered := counts[event.ID]
		summary.TotalRegistrations += registered
		if event.Date.After(now) {
			summary.UpcomingEvents++
		}
		if event.Capacity > 0 {
			summary.CapacityBooked += registered
			summary.CapacityTotal += event.Capacity
		}
	}
	return summary
}
