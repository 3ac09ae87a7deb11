package models

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError maps field names to human-readable problems, mirroring
// the field-keyed 400 bodies the API returns.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewFieldError(field, msg string) ValidationError {
	return ValidationError{field: msg}
}

// ErrInvalidState marks transitions attempted on already-resolved state,
// e.g. re-accepting a resolved invitation or a second billing address.
var ErrInvalidState = errors.New("invalid state")
