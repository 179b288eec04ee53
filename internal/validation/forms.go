package validation

// EventForm is the bound body of an event create or update submission.
type EventForm struct {
	ID          string `form:"id"`
	Name        string `form:"name" validate:"notblank"`
	Description string `form:"description" validate:"notblank"`
	Date        string `form:"date" validate:"required,eventdate"`
	Location    string `form:"location" validate:"notblank"`
	Capacity    string `form:"capacity" validate:"omitempty,capacity"`
}

// RegistrationForm is the bound body of a registration create or update submission.
// Event holds the submitted event identifier before it is resolved.
type RegistrationForm struct {
	ID    string `form:"id"`
	Name  string `form:"name" validate:"notblank"`
	Email string `form:"email" validate:"notblank,email"`
	Event string `form:"event" validate:"required,number"`
}

var messages = map[string]string{
	"EventForm.name.notblank":        "Event name is required",
	"EventForm.description.notblank": "Description is required",
	"EventForm.date.required":        "Date is required",
	"EventForm.date.eventdate":       "Date must be formatted as YYYY-MM-DDTHH:MM",
	"EventForm.location.notblank":    "Location is required",
	"EventForm.capacity.capacity":    "Capacity must be a non-negative whole number",

	"RegistrationForm.name.notblank":  "Name is required",
	"RegistrationForm.email.notblank": "Email is required",
	"RegistrationForm.email.email":    "Email should be valid",
	"RegistrationForm.event.required": "Event is required",
	"RegistrationForm.event.number":   "Event is required",
}

// Messages for conditions detected after rule evaluation.
const (
	MessageUnknownEvent = "Selected event does not exist"
)
