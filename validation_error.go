package dealkit

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ValidationError maps field names to the ordered list of messages that fired
// for that field. It is built fresh per request and never shared; an empty map
// means the payload passed every declared rule.
//
// It is based on url.Values to reuse its string-slice handling.
type ValidationError url.Values

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends an error message for a field, preserving insertion order.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Merge copies every message from other into e, field by field.
func (e ValidationError) Merge(other map[string][]string) {
	for field, msgs := range other {
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
}

// Get returns the first message recorded for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has reports whether a field has any messages.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty reports whether no messages were recorded.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Fields returns the sorted list of fields that have messages.
func (e ValidationError) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
