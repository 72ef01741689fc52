package cli

import (
	"errors"
	"fmt"

	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/ops"
)

// NotFoundError indicates a prospect was not found.
type NotFoundError struct {
	Ref string // the ID or prefix that was looked up
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("prospect %s not found", e.Ref)
}

// AmbiguousError indicates an ID prefix matched more than one prospect.
type AmbiguousError struct {
	Ref     string
	Matches string // the underlying message listing the candidates
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s\nUse more characters of the ID.", e.Matches)
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// LookupError converts an ID lookup failure into a user-facing error.
func LookupError(ref string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrUnknownID), errors.Is(err, ops.ErrNotFound):
		return &NotFoundError{Ref: ref}
	case errors.Is(err, model.ErrAmbiguousID):
		return &AmbiguousError{Ref: ref, Matches: err.Error()}
	case errors.Is(err, model.ErrInvalidID):
		return &ValidationError{
			Field:   "ID",
			Message: fmt.Sprintf("%q (use at least %d hex characters)", ref, model.MinIDPrefix),
		}
	}
	return err
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
