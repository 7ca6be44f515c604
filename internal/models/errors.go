package models

import (
	"errors"
	"fmt"
)

// Reason says why a score field was rejected.
type Reason string

const (
	ReasonMissing Reason = "missing"
	ReasonInvalid Reason = "invalid"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidValue = errors.New("invalid value")
)

// ValidationError identifies the first score field that failed validation.
// Its message is returned to clients as is.
type ValidationError struct {
	Field  string
	Reason Reason
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonMissing {
		return fmt.Sprintf("Missing field: %s", e.Field)
	}
	return fmt.Sprintf("Invalid value for %s. Must be an integer between %d and %d.", e.Field, MinScore, MaxScore)
}

// Is lets callers match on ErrMissingField or ErrInvalidValue.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Reason == ReasonMissing
	case ErrInvalidValue:
		return e.Reason == ReasonInvalid
	}
	return false
}
