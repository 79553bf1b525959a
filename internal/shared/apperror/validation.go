package apperror

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries per-field failures for 422 responses. The contract
// maps each invalid field to exactly one message.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
