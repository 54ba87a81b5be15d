package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/services"
	"github.com/getsentry/sentry-go"
)

// Error codes reported in extensions.code.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

const internalMessage = "Error interno del servidor"

// Error is a resolver error carrying a machine-readable code. graphql-go
// copies Extensions into the response.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// Code classifies a service error.
func Code(err error) string {
	switch {
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		return CodeUnauthenticated
	case errors.Is(err, services.ErrForbidden):
		return CodeForbidden
	case errors.Is(err, services.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, services.ErrConflict):
		return CodeConflict
	case errors.Is(err, services.ErrInvalidInput):
		return CodeBadUserInput
	}
	return CodeInternal
}

// toGraphQLError converts a service error for the response. Internal
// failures are logged and reported to Sentry, and the client only sees a
// generic message.
func toGraphQLError(ctx context.Context, operation string, err error) error {
	code := Code(err)
	if code != CodeInternal {
		return &Error{Message: err.Error(), Code: code}
	}

	attrs := []any{"operation", operation, "error", err.Error()}
	if caller := auth.FromContext(ctx); caller != nil {
		attrs = append(attrs, "user_id", caller.ID.String())
	}
	slog.ErrorContext(ctx, "resolver failed", attrs...)

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}

	msg := internalMessage
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		msg = svcErr.Message
	}
	return &Error{Message: msg, Code: CodeInternal}
}
