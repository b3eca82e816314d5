package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/tanod/core"
)

// localsEmailKey is where RequireAuth stores the authenticated identity for
// downstream handlers.
const localsEmailKey = "email"

// RequireAuth builds a middleware that validates the bearer access token
// and stores the asserted email in the request context.
func RequireAuth(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		email, err := auth.ValidateAccess(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		c.Locals(localsEmailKey, email)

		return c.Next()
	}
}
