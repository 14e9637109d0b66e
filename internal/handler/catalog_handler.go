package handler

import (
	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/gofiber/fiber/v3"
)

// CatalogHandler serves the fixed tag catalog and color palette.
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Register sets up the catalog route. Catalogs are configuration constants,
// so the route stays public.
func (h *CatalogHandler) Register(app *fiber.App) {
	app.Get("/api/v1/catalogs", h.Catalogs)
}

// Catalogs returns the tag catalog and color palette.
func (h *CatalogHandler) Catalogs(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tags":   domain.Tags,
		"colors": domain.Colors,
	})
}
