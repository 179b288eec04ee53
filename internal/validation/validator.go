package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldErrors maps an input name to the message shown next to it.
type FieldErrors map[string]string

// HasErrors reports whether any field failed.
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

// Add records a message for field unless one is already present.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// Validator evaluates form structs. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("capacity", func(fl validator.FieldLevel) bool {
		_, err := ParseCapacity(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// ErrInvalidCapacity is returned for capacities that are not a non-negative int.
var ErrInvalidCapacity = errors.New("invalid capacity")

// ParseCapacity parses a submitted capacity. Blank input means zero.
func ParseCapacity(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	capacity, err := strconv.Atoi(value)
	if err != nil || capacity < 0 {
		return 0, ErrInvalidCapacity
	}
	return capacity, nil
}

// Validate returns the failing fields of form. The result is never nil.
func (v *Validator) Validate(form any) FieldErrors {
	result := FieldErrors{}
	err := v.validate.Struct(form)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Add("form", "Submitted form could not be processed")
		return result
	}
	for _, fieldErr := range fieldErrs {
		result.Add(fieldErr.Field(), messageFor(fieldErr))
	}
	return result
}

func messageFor(fieldErr validator.FieldError) string {
	if message, ok := messages[fieldErr.Namespace()+"."+fieldErr.Tag()]; ok {
		return message
	}
	return fieldErr.Field() + " is invalid"
}
