package validation

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid form field. Transports surface these
// inline next to the field; a submission is blocked until all are clear.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Errors aggregates one FieldError per invalid field.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Has reports whether a field is among the failures.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// FieldMap flattens the failures into field to reason, in the shape
// transports render.
func (e Errors) FieldMap() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Reason
		}
	}
	return m
}

// OrNil returns e as an error, or nil when every field passed. Returning the
// typed nil slice directly would produce a non-nil error interface.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
