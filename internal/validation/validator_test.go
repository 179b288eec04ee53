package validation

import (
	"errors"
	"testing"
	"time"
)

func validEventForm() EventForm {
	return EventForm{
		Name:        "Conf",
		Description: "Annual",
		Date:        "2025-06-01T09:00",
		Location:    "Hall",
		Capacity:    "100",
	}
}

func TestValidator_EventForm(t *testing.T) {
	t.Parallel()

	v := New()

	tests := []struct {
		name   string
		mutate func(*EventForm)
		want   FieldErrors
	}{
		{
			name:   "valid form",
			mutate: func(*EventForm) {},
			want:   FieldErrors{},
		},
		{
			name:   "empty name",
			mutate: func(f *EventForm) { f.Name = "" },
			want:   FieldErrors{"name": "Event name is required"},
		},
		{
			name:   "whitespace description and location",
			mutate: func(f *EventForm) { f.Description = "   "; f.Location = "\t" },
			want: FieldErrors{
				"description": "Description is required",
				"location":    "Location is required",
			},
		},
		{
			name:   "missing date",
			mutate: func(f *EventForm) { f.Date = "" },
			want:   FieldErrors{"date": "Date is required"},
		},
		{
			name:   "unparseable date",
			mutate: func(f *EventForm) { f.Date = "next tuesday" },
			want:   FieldErrors{"date": "Date must be formatted as YYYY-MM-DDTHH:MM"},
		},
		{
			name:   "blank capacity is allowed",
			mutate: func(f *EventForm) { f.Capacity = "" },
			want:   FieldErrors{},
		},
		{
			name:   "negative capacity",
			mutate: func(f *EventForm) { f.Capacity = "-5" },
			want:   FieldErrors{"capacity": "Capacity must be a non-negative whole number"},
		},
		{
			name:   "capacity overflowing int",
			mutate: func(f *EventForm) { f.Capacity = "99999999999999999999" },
			want:   FieldErrors{"capacity": "Capacity must be a non-negative whole number"},
		},
		{
			name:   "fractional capacity",
			mutate: func(f *EventForm) { f.Capacity = "2.5" },
			want:   FieldErrors{"capacity": "Capacity must be a non-negative whole number"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := validEventForm()
			tt.mutate(&form)
			got := v.Validate(form)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for field, message := range tt.want {
				if got[field] != message {
					t.Fatalf("field %s: expected %q, got %q", field, message, got[field])
				}
			}
		})
	}
}

func TestValidator_RegistrationForm(t *testing.T) {
	t.Parallel()

	v := New()

	tests := []struct {
		name string
		form RegistrationForm
		want FieldErrors
	}{
		{
			name: "valid form",
			form: RegistrationForm{Name: "Ada", Email: "a@x.io", Event: "3"},
			want: FieldErrors{},
		},
		{
			name: "invalid email",
			form: RegistrationForm{Name: "Ada", Email: "not-an-email", Event: "3"},
			want: FieldErrors{"email": "Email should be valid"},
		},
		{
			name: "blank email reports required only",
			form: RegistrationForm{Name: "Ada", Email: " ", Event: "3"},
			want: FieldErrors{"email": "Email is required"},
		},
		{
			name: "missing name and event",
			form: RegistrationForm{Email: "a@x.io"},
			want: FieldErrors{"name": "Name is required", "event": "Event is required"},
		},
		{
			name: "non numeric event",
			form: RegistrationForm{Name: "Ada", Email: "a@x.io", Event: "abc"},
			want: FieldErrors{"event": "Event is required"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := v.Validate(tt.form)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for field, message := range tt.want {
				if got[field] != message {
					t.Fatalf("field %s: expected %q, got %q", field, message, got[field])
				}
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for _, input := range []string{"2025-06-01T09:00", "2025-06-01T09:00:00", "2025-06-01 09:00", " 2025-06-01T09:00 "} {
		got, err := ParseDate(input)
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", input, err)
		}
		if !got.Equal(want) || got.Location() != time.UTC {
			t.Fatalf("ParseDate(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := ParseDate("01/06/2025"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"whole minute", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), "2025-06-01T09:00"},
		{"with seconds", time.Date(2025, 6, 1, 9, 0, 30, 0, time.UTC), "2025-06-01T09:00:30"},
		{"converted to utc", time.Date(2025, 6, 1, 11, 0, 0, 0, time.FixedZone("CEST", 2*60*60)), "2025-06-01T09:00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatDate(tt.input)
			if got != tt.want {
				t.Fatalf("FormatDate() = %q, want %q", got, tt.want)
			}
			parsed, err := ParseDate(got)
			if err != nil || !parsed.Equal(tt.input) {
				t.Fatalf("ParseDate(%q) = %s, %v; want %s", got, parsed, err, tt.input)
			}
		})
	}
}

func TestParseCapacity(t *testing.T) {
	t.Parallel()

	valid := map[string]int{"": 0, "0": 0, " 25 ": 25, "100": 100}
	for input, want := range valid {
		got, err := ParseCapacity(input)
		if err != nil || got != want {
			t.Fatalf("ParseCapacity(%q) = %d, %v; want %d", input, got, err, want)
		}
	}

	for _, input := range []string{"-1", "abc", "2.5", "99999999999999999999"} {
		if _, err := ParseCapacity(input); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("ParseCapacity(%q): expected ErrInvalidCapacity, got %v", input, err)
		}
	}
}

func TestFieldErrors_AddKeepsFirst(t *testing.T) {
	t.Parallel()

	errs := FieldErrors{}
	errs.Add("event", "first")
	errs.Add("event", "second")
	if errs["event"] != "first" || !errs.HasErrors() {
		t.Fatalf("unexpected field errors: %v", errs)
	}
}
