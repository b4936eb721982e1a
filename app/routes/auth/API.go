package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"result-portal/app/services"
)

// Handler owns the auth endpoints and the access-guard middleware.
type Handler struct {
	Issuer *services.SessionIssuer
	Secret []byte
	Expiry time.Duration
	Secure bool
}

func NewHandler(issuer *services.SessionIssuer, secret []byte, expiry time.Duration, secure bool) *Handler {
	return &Handler{Issuer: issuer, Secret: secret, Expiry: expiry, Secure: secure}
}

func (h *Handler) LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	token, err := h.Issuer.IssueSession(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid username or password"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Something went wrong"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Expiry.Seconds()),
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Strict",
	})

	return c.JSON(fiber.Map{"message": "Login successful"})
}

func (h *Handler) ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		Username        string `json:"username"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	err := h.Issuer.ChangeSecret(req.Username, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Password updated successfully"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Admin user not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": "Current password is incorrect"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"error": "New password is required"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Something went wrong"})
	}
}

func (h *Handler) LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: "Strict",
	})

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetTokenAPI exposes the raw cookie token to the page layer.
func (h *Handler) GetTokenAPI(c *fiber.Ctx) error {
	token := c.Cookies(CookieName)
	if token == "" {
		return c.JSON(fiber.Map{"token": nil})
	}
	return c.JSON(fiber.Map{"token": token})
}
