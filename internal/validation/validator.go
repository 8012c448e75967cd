// Package validation checks workflow inputs against their struct-tag schemas and reports
// failures as *domain.ValidationError keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"classregistration/internal/domain"
)

// labels are the human names used in field messages.
var labels = map[string]string{
	"eventId":         "Event",
	"registrationId":  "Registration",
	"firstName":       "First name",
	"lastName":        "Last name",
	"address":         "Address",
	"city":            "City",
	"state":           "State",
	"zipCode":         "Zip code",
	"phone":           "Phone number",
	"email":           "Email",
	"cardType":        "Card type",
	"cardNumber":      "Card number",
	"expirationMonth": "Month",
	"expirationYear":  "Year",
	"securityCode":    "Security code",
}

// Validator validates inputs. Safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that names fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s. It returns nil, a *domain.ValidationError listing every failed field,
// or the validator's own error when s is not a struct.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	label, ok := labels[field]
	if !ok {
		label = field
	}
	switch {
	case field == "confirmEvent":
		return "Please confirm your event selection"
	case field == "eventId":
		return "Please select an event"
	case fe.Tag() == "email":
		return "Invalid email address"
	case fe.Tag() == "required":
		return label + " is required"
	case fe.Tag() == "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case fe.Tag() == "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	}
	return label + " is invalid"
}
