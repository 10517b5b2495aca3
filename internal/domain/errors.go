package domain

import (
	"errors"
	"fmt"
	"strings"
)

// The fixed outcome taxonomy. Every core operation returns nil or an error
// that wraps exactly one of these sentinels; the delivery layer maps them to
// HTTP statuses with errors.Is. Anything a component cannot classify must be
// wrapped into ErrInternal once, at the layer that first sees it.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("category not found")
	ErrAlreadyDeleted   = errors.New("category is already deleted")
	ErrAlreadyExists    = errors.New("category already exists")
	ErrInternal         = errors.New("internal error")
)

// IsClassified reports whether err already carries one of the outcome kinds.
func IsClassified(err error) bool {
	for _, kind := range []error{
		ErrInvalidRequest,
		ErrUnauthenticated,
		ErrPermissionDenied,
		ErrNotFound,
		ErrAlreadyDeleted,
		ErrAlreadyExists,
		ErrInternal,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// FieldViolation is one failed constraint on one input field.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Msg   string `json:"message"`
}

// ValidationError aggregates every violation found in one input so callers
// see the full list at once instead of the first failing field.
type ValidationError struct {
	Violations []FieldViolation
}

func (e ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInvalidRequest.Error()
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Msg))
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

// Unwrap ties every validation failure to the InvalidRequest outcome.
func (e ValidationError) Unwrap() error { return ErrInvalidRequest }
