package services

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/google/uuid"
)

// Error kinds. Every error returned by a service matches exactly one of
// these with errors.Is.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUpstream           = errors.New("upstream failure")
)

// Error is a classified, user-facing service error.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// upstream wraps a store or provider failure. The message names the
// operation, never the cause.
func upstream(msg string, cause error) *Error {
	return &Error{Kind: ErrUpstream, Message: msg, Cause: cause}
}

func invalid(cause error) *Error {
	return &Error{Kind: ErrInvalidInput, Message: cause.Error(), Cause: cause}
}

var errNotAuthenticated = newError(ErrUnauthenticated, "No autenticado")

// denied converts a policy decision into an error, or nil when allowed.
func denied(d policy.Decision, msg string) error {
	if d.Allowed {
		return nil
	}
	if d.Reason == policy.ReasonUnauthenticated {
		return errNotAuthenticated
	}
	return newError(ErrForbidden, msg)
}

// lookupError classifies an error from a FindByID call.
func lookupError(err error, notFoundMsg, failMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, notFoundMsg)
	}
	return upstream(failMsg, err)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, newError(ErrInvalidInput, "ID no válido: "+s)
	}
	return id, nil
}
