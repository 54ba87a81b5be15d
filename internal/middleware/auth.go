package middleware

import (
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Caller resolves an optional bearer token into an auth.Caller stored in
// the Fiber locals. Missing, malformed or expired tokens leave the request
// anonymous; authorization is decided later by the services.
func Caller(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			if caller := callerFromToken(c); caller != nil {
				auth.SetLocals(c, caller)
				if hub := sentryfiber.GetHubFromContext(c); hub != nil {
					hub.Scope().SetUser(sentry.User{ID: caller.ID.String(), Email: caller.Email})
				}
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}

func callerFromToken(c *fiber.Ctx) *auth.Caller {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil {
		return nil
	}
	return services.CallerFromClaims(claims)
}
