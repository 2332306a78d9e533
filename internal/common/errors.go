// Package common defines shared constants and sentinel errors used across
// the OutfitAI server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// ErrorUpstream marks a failed call to an external collaborator
	// (blob storage, completion service).
	ErrorUpstream = errors.New("upstream failure")
)

// DetailedError pairs a sentinel kind with a message safe to show to clients.
type DetailedError struct {
	Kind error
	Msg  string
}

func (e *DetailedError) Error() string { return e.Msg }
func (e *DetailedError) Unwrap() error { return e.Kind }

// Detail wraps kind with a client-facing message; errors.Is(err, kind) still holds.
func Detail(kind error, msg string) error {
	return &DetailedError{Kind: kind, Msg: msg}
}

// IsNotFound reports whether err is, or wraps, ErrorNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrorNotFound)
}
