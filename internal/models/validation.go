package models

import (
	"fmt"
	"sort"
	"strings"
)

const (
	MsgRequired   = "This field is required."
	MsgBlank      = "This field may not be blank."
	MsgNotANumber = "A valid number is required."
	MsgInvalidID  = "Must be a valid UUID."
)

func invalidChoice(value string) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}

// ValidationError collects per-field messages for a rejected write.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// FieldError is a shorthand for a single-field ValidationError.
func FieldError(field, msg string) *ValidationError {
	verr := NewValidationError()
	verr.Add(field, msg)
	return verr
}

// Add records msg for field unless the field already has a message.
func (e *ValidationError) Add(field, msg string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = msg
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns e as an error when it holds messages and nil otherwise.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
