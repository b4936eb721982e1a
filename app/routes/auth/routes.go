package auth

import (
	"github.com/gofiber/fiber/v2"
)

// CookieName is the session cookie carrying the signed admin token.
const CookieName = "adminToken"

func SetupAuthRoutes(app *fiber.App, h *Handler) {
	// Public routes
	app.Post("/login", h.LoginAPI)
	app.Put("/login", h.ChangePasswordAPI)
	app.Get("/logout", h.LogoutAPI)
	app.Get("/token", h.GetTokenAPI)

	// Login page: a logged-in admin is sent straight to the dashboard.
	app.Get("/sign-in", h.RedirectIfAuthenticated, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "sign-in"})
	})

	// Protected pages
	app.Get("/teacher-dashboard", h.RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page":     "teacher-dashboard",
			"username": c.Locals("admin_username"),
		})
	})
	app.Get("/add-results", h.RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page":     "add-results",
			"username": c.Locals("admin_username"),
		})
	})
}
