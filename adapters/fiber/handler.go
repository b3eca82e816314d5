package fiber

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/tanod/core"
)

// handleRegister returns a handler for the register endpoint
func handleRegister(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid request body",
			})
		}

		if _, err := auth.Register(c.Context(), input); err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "User registered successfully",
		})
	}
}

// handleLogin returns a handler for the login endpoint
func handleLogin(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.LoginInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid request body",
			})
		}

		result, err := auth.Login(c.Context(), input)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message":  "Login successful",
			"token":    result.Tokens.AccessToken,
			"refresh":  result.Tokens.RefreshToken,
			"username": result.User.Name,
			"email":    result.User.Email,
		})
	}
}

// handleResetPassword returns a handler for the reset-password endpoint.
// The issued code travels in-band in the message field unless the server
// conceals it, in which case the notifier carries it and the response only
// acknowledges.
func handleResetPassword(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.ResetRequestInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid request body",
			})
		}

		result, err := auth.RequestReset(c.Context(), input)
		if err != nil {
			return handleAuthError(c, err)
		}

		message := result.Code
		if message == "" {
			message = "OTP sent"
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": message,
		})
	}
}

// handleUpdatePassword returns a handler for the update-password endpoint
func handleUpdatePassword(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.UpdatePasswordInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid request body",
			})
		}

		if err := auth.UpdatePassword(c.Context(), input); err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "Password updated successfully",
		})
	}
}

// handleLogout returns a handler for the logout endpoint. Tokens are
// self-contained, so the use case only acknowledges the session's end.
func handleLogout(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			return handleAuthError(c, err)
		}

		if err := auth.Logout(c.Context(), token); err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "Logout successful",
		})
	}
}

// handleUpdateProfile returns a handler for the update-profile endpoint
func handleUpdateProfile(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		email, _ := c.Locals(localsEmailKey).(string)
		if email == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": core.ErrInvalidToken.Error(),
			})
		}

		var input core.UpdateProfileInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid request body",
			})
		}

		if _, err := auth.UpdateProfile(c.Context(), email, input); err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "Profile updated successfully",
		})
	}
}

// handleRefresh returns a handler for the refresh endpoint
func handleRefresh(auth core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.RefreshInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "invalid request body",
			})
		}

		tokens, err := auth.Refresh(c.Context(), input.Refresh)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "Token refreshed",
			"token":   tokens.AccessToken,
			"refresh": tokens.RefreshToken,
		})
	}
}

// extractToken pulls the bearer credential from the Authorization header. A
// missing header and a present-but-malformed one are distinct failures.
func extractToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", core.ErrMissingAuthHeader
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return "", core.ErrInvalidAuthHeader
	}
	return token, nil
}

// handleAuthError maps use-case errors to HTTP responses
func handleAuthError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// mapErrorToStatus maps core error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidAuthHeader),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrTokenExpired):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrUserExists),
		errors.Is(err, core.ErrOTPInvalidOrExpired),
		errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordTooLong),
		errors.Is(err, core.ErrOTPRequired),
		errors.Is(err, core.ErrNameRequired):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
