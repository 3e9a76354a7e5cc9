package models

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an id that does not resolve to a stored document.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// DuplicateKeyError reports a write that violates a uniqueness constraint.
type DuplicateKeyError struct {
	Entity string
	Field  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
}

const (
	EntityDoctor      = "Doctor"
	EntityPatient     = "Patient"
	EntityAppointment = "Appointment"
)

// ErrMissingField is the message used when a create call lacks an argument.
var ErrMissingField = &ValidationError{Message: "Missing required field"}

func requiredField(field string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Path `%s` is required.", field)}
}

func invalidEnum(field, value string) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("`%s` is not a valid enum value for path `%s`.", value, field),
	}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDuplicateKey(err error) bool {
	var de *DuplicateKeyError
	return errors.As(err, &de)
}
