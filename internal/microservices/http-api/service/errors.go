package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is the root of every "referenced thing is absent" error;
// check with errors.Is.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrGenreNotFound    = fmt.Errorf("genre %w", ErrNotFound)
	ErrTitleNotFound    = fmt.Errorf("title %w", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("review %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
)

// ErrForbidden is returned when an object-level policy check fails.
var ErrForbidden = errors.New("forbidden")

var (
	ErrDuplicateReview  = errors.New("one review per title per author")
	ErrSignupConflict   = errors.New("username and email belong to different accounts")
	ErrInvalidCode      = errors.New("invalid confirmation code")
	ErrReservedUsername = errors.New(`username "me" is reserved`)
)

// NonFieldKey holds messages that are not tied to one input field.
const NonFieldKey = "non_field_errors"

// ValidationError carries field-keyed messages. Err, when set, is the
// sentinel it stands for so callers can still use errors.Is.
type ValidationError struct {
	Fields map[string]string
	Err    error
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

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// fieldError wraps a sentinel into a single-field ValidationError.
func fieldError(field string, sentinel error) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: sentinel.Error()}, Err: sentinel}
}

// fieldErrors accumulates messages and yields nil when none were added.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
