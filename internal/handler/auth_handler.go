package handler

import (
	"errors"

	"github.com/YanisseIsmaili/github-monitor/internal/port"
	"github.com/YanisseIsmaili/github-monitor/internal/service"
	"github.com/gofiber/fiber/v3"
)

// AuthHandler handles credential lifecycle endpoints.
type AuthHandler struct {
	dashboard *service.Dashboard
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(dashboard *service.Dashboard) *AuthHandler {
	return &AuthHandler{dashboard: dashboard}
}

// Register sets up auth routes.
func (h *AuthHandler) Register(app *fiber.App) {
	auth := app.Group("/api/v1/auth")
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
}

// Login verifies a personal access token and starts the first refresh.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing token"})
	}

	if err := h.dashboard.Login(c.Context(), body.Token); err != nil {
		if errors.Is(err, port.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token invalid or expired"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	snap := h.dashboard.Snapshot()
	return c.JSON(fiber.Map{"user": snap.User})
}

// Logout discards the credential. Customizations stay persisted.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	h.dashboard.Logout()
	return c.JSON(fiber.Map{"ok": true})
}
