package middleware

import (
	"github.com/YanisseIsmaili/github-monitor/internal/port"
	"github.com/gofiber/fiber/v3"
)

// AuthChecker reports whether the engine currently holds a verified credential.
type AuthChecker interface {
	Authenticated() bool
}

// RequireCredential rejects requests while the engine is unauthenticated.
// The credential itself lives server-side; callers only need to have logged in.
func RequireCredential(auth AuthChecker) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !auth.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": port.ErrNoCredential.Error(),
			})
		}
		return c.Next()
	}
}
