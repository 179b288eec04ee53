package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/example/event-registration/internal/application"
	"github.com/example/event-registration/internal/validation"
)

func bindEventForm(values url.Values) validation.EventForm {
	return validation.EventForm{
		ID:          values.Get("id"),
		Name:        values.Get("name"),
		Description: values.Get("description"),
		Date:        values.Get("date"),
		Location:    values.Get("location"),
		Capacity:    values.Get("capacity"),
	}
}

// toEvent converts whatever parsed cleanly; invalid fields keep their zero value
// so a re-rendered form shows the rest of the submission.
func toEvent(form validation.EventForm) application.Event {
	event := application.Event{
		Name:        form.Name,
		Description: form.Description,
		Location:    form.Location,
	}
	if date, err := validation.ParseDate(form.Date); err == nil {
		event.Date = date
	}
	if capacity, err := validation.ParseCapacity(form.Capacity); err == nil {
		event.Capacity = capacity
	}
	return event
}

// bindRegistrationForm accepts the event selector as either `event` or `event.id`.
func bindRegistrationForm(values url.Values) validation.RegistrationForm {
	eventID := values.Get("event")
	if eventID == "" {
		eventID = values.Get("event.id")
	}
	return validation.RegistrationForm{
		ID:    values.Get("id"),
		Name:  values.Get("name"),
		Email: values.Get("email"),
		Event: strings.TrimSpace(eventID),
	}
}

func toRegistration(form validation.RegistrationForm) application.Registration {
	registration := application.Registration{
		Name:  form.Name,
		Email: form.Email,
	}
	if id, ok := parseID(form.Event); ok {
		registration.Event.ID = id
	}
	return registration
}

// parseID accepts positive decimal identifiers only.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseForm(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
