package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the booking wizard.
var (
	// ErrInvalidRequest is wrapped by every user input validation failure.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidTransition is returned when an action is not allowed from the current step.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNoResults is returned when selecting a flight while no results are shown.
	ErrNoResults = errors.New("no flight results to select from")

	// ErrFlightNotInResults is returned when the selected flight was not in the shown results.
	ErrFlightNotInResults = errors.New("flight is not in the current results")

	// ErrSessionNotFound is returned when a session ID is unknown.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session whose ID is taken.
	ErrSessionExists = errors.New("session already exists")
)

// PassengerValidationMessage is the single message shown for any invalid passenger form.
const PassengerValidationMessage = "Please fill out all passenger information correctly."

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap allows errors.Is(err, ErrInvalidRequest).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// ValidationErrors collects multiple field errors from one form submission.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap allows errors.Is(err, ErrInvalidRequest).
func (v *ValidationErrors) Unwrap() error {
	return ErrInvalidRequest
}

// ToMap converts validation errors to a field -> message map.
// When a field repeats, the first message wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, exists := result[e.Field]; !exists {
			result[e.Field] = e.Message
		}
	}
	return result
}

// WrapInvalidRequest creates an error wrapping ErrInvalidRequest with a formatted message.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// NewInvalidTransitionError reports that action is not allowed from step from.
func NewInvalidTransitionError(action string, from Step) error {
	return fmt.Errorf("%w: cannot %s from step %q", ErrInvalidTransition, action, from.String())
}

// IsInvalidRequest checks if the error is a validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsInvalidTransition checks if the error is a rejected wizard transition.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNoResults) ||
		errors.Is(err, ErrFlightNotInResults)
}

// IsSessionNotFound checks if the error is an unknown session.
func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
