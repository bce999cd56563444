// Package apperrors holds the user-facing outcomes of registry operations.
// Anything that is not one of these types is an unexpected fault.
package apperrors

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a submitted field name to its error message.
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Merge copies every entry of other that is not already present.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msg := range other {
		f.Add(field, msg)
	}
}

func (f FieldErrors) String() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}
	return strings.Join(parts, "; ")
}

// ValidationError reports malformed or out-of-policy input. Nothing was written.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.String()
}

// NewValidationError returns a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: FieldErrors{field: msg}}
}

// ConflictError reports a uniqueness violation, either from a pre-check or
// from the store's own constraint at commit time.
type ConflictError struct {
	Fields FieldErrors
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Fields.String()
}

// NewConflictError returns a ConflictError for a single field.
func NewConflictError(field, msg string) *ConflictError {
	return &ConflictError{Fields: FieldErrors{field: msg}}
}

// AuthorizationError reports that the acting identity may not perform an action.
// Unauthenticated is set when there is no identity at all; callers should send
// the client to the login flow.
type AuthorizationError struct {
	Action          string
	Unauthenticated bool
}

func (e *AuthorizationError) Error() string {
	if e.Unauthenticated {
		return fmt.Sprintf("authentication required to %s", e.Action)
	}
	return fmt.Sprintf("unauthorized: you don't have permission to %s", e.Action)
}

// NotFoundError reports a missing user, profile, hospital or application.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
