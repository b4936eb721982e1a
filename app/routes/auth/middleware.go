package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"result-portal/app/services"
)

// RequireAuth validates the session cookie before any protected handler
// runs. Pages redirect to the login route on failure; API paths get a 401.
// A valid token passes through unchanged, it is not refreshed or renewed.
func (h *Handler) RequireAuth(c *fiber.Ctx) error {
	isAPIRequest := strings.HasPrefix(c.Path(), "/results") || strings.HasPrefix(c.Path(), "/api/")

	tokenString := c.Cookies(CookieName)
	if tokenString == "" {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "No token found"})
		}
		return c.Redirect("/sign-in")
	}

	claims, err := services.ValidateToken(tokenString, h.Secret)
	if err != nil {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
		}
		return c.Redirect("/sign-in")
	}

	c.Locals("admin_username", claims.Username)
	c.Locals("admin_role", claims.Role)

	return c.Next()
}

// RedirectIfAuthenticated keeps a logged-in admin off the login page. An
// absent or invalid token lets the request through unchanged.
func (h *Handler) RedirectIfAuthenticated(c *fiber.Ctx) error {
	if tokenString := c.Cookies(CookieName); tokenString != "" {
		if _, err := services.ValidateToken(tokenString, h.Secret); err == nil {
			return c.Redirect("/teacher-dashboard")
		}
	}
	return c.Next()
}
