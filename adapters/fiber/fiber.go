// Package fiber adapts the auth use cases onto a gofiber/v3 application.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/tanod/core"
)

type Adapter struct {
	app *fiber.App
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

func (a *Adapter) RegisterRoutes(auth core.AuthHandler, basePath string) error {
	api := a.app.Group(basePath)

	// Public routes
	api.Post("/register", handleRegister(auth))
	api.Post("/login", handleLogin(auth))
	api.Post("/reset-password", handleResetPassword(auth))
	api.Post("/update-password", handleUpdatePassword(auth))
	api.Post("/refresh", handleRefresh(auth))

	// Protected routes. The first handler runs first and the rest only run
	// through c.Next(), so the middleware must lead the chain.
	requireAuth := RequireAuth(auth)
	api.Post("/logout", requireAuth, handleLogout(auth))
	api.Put("/update-profile", requireAuth, handleUpdateProfile(auth))

	return nil
}
