package models

import (
	"sort"
	"strings"
)

// FieldErrors carries validation failures keyed by the offending field,
// so handlers can render them as a per-field 400 body.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	sort.Strings(parts)
	return strings.Join(parts, " | ")
}

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func fieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}
