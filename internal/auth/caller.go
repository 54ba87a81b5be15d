// Package auth carries the verified identity of the requesting user
// through request contexts.
package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Caller is the identity reconstructed from a verified credential.
type Caller struct {
	ID      uuid.UUID
	Email   string
	Name    string
	Surname string
	Role    string
}

type ctxKey struct{}

const localsKey = "caller"

// WithCaller returns a copy of ctx carrying c. A nil caller is stored as-is
// so lookups on anonymous requests still return nil.
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the caller stored in ctx, or nil for anonymous requests.
func FromContext(ctx context.Context) *Caller {
	if c, ok := ctx.Value(ctxKey{}).(*Caller); ok {
		return c
	}
	return nil
}

// SetLocals stores the caller on the Fiber context.
func SetLocals(c *fiber.Ctx, caller *Caller) {
	c.Locals(localsKey, caller)
}

// FromLocals extracts the caller placed by the auth middleware.
func FromLocals(c *fiber.Ctx) *Caller {
	if caller, ok := c.Locals(localsKey).(*Caller); ok {
		return caller
	}
	return nil
}
