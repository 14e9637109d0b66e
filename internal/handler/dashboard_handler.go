package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/YanisseIsmaili/github-monitor/internal/service"
	"github.com/gofiber/fiber/v3"
)

// DashboardHandler exposes the engine's snapshot and the user intent surface.
type DashboardHandler struct {
	dashboard *service.Dashboard
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboard *service.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Register sets up dashboard routes on a credential-gated group.
func (h *DashboardHandler) Register(api fiber.Router) {
	api.Get("/dashboard", h.Snapshot)
	api.Post("/dashboard/refresh", h.Refresh)
	api.Get("/dashboard/events", h.StreamEvents)

	api.Put("/repos/order", h.Reorder)
	api.Post("/repos/:id/collapse", h.ToggleCollapse)
	api.Put("/repos/:id/color", h.SetColor)
	api.Post("/repos/:id/tags/:tagID", h.ToggleTag)

	api.Put("/settings/auto-refresh", h.SetAutoRefresh)
}

// Snapshot returns the rendered state. The q, tag, and mode query params are
// user intents: they update the engine's filters before the snapshot is taken.
func (h *DashboardHandler) Snapshot(c fiber.Ctx) error {
	if q, hasQ := queryParam(c, "q"); hasQ {
		h.dashboard.SetSearchQuery(q)
	}
	if tag, hasTag := queryParam(c, "tag"); hasTag {
		if tag != "" {
			if _, ok := domain.TagByID(tag); !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown tag"})
			}
		}
		h.dashboard.SetActiveTagFilter(tag)
	}
	if mode, hasMode := queryParam(c, "mode"); hasMode {
		if !domain.ValidViewMode(mode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown view mode"})
		}
		h.dashboard.SetViewMode(domain.ViewMode(mode))
	}

	return c.JSON(h.dashboard.Snapshot())
}

// Refresh triggers a refresh cycle. The cycle runs in the background; a
// refresh_complete event fires on the SSE stream when it publishes.
func (h *DashboardHandler) Refresh(c fiber.Ctx) error {
	h.dashboard.Refresh()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "refresh started"})
}

// Reorder applies a drag result: source repo moves to the target's position.
func (h *DashboardHandler) Reorder(c fiber.Ctx) error {
	var body struct {
		SourceID int64 `json:"source_id"`
		TargetID int64 `json:"target_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := h.dashboard.Customizations().Reorder(body.SourceID, body.TargetID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"order": h.dashboard.Customizations().Order()})
}

// ToggleCollapse flips a repository's collapsed flag.
func (h *DashboardHandler) ToggleCollapse(c fiber.Ctx) error {
	id, err := repoID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid repo id"})
	}

	if err := h.dashboard.Customizations().ToggleCollapse(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"collapsed": h.dashboard.Customizations().Collapsed(id)})
}

// SetColor assigns or clears a repository's color. A null or empty color clears.
func (h *DashboardHandler) SetColor(c fiber.Ctx) error {
	id, err := repoID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid repo id"})
	}

	var body struct {
		Color *string `json:"color"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	color := ""
	if body.Color != nil {
		color = *body.Color
	}
	if _, ok := domain.ColorByValue(color); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown color"})
	}

	if err := h.dashboard.Customizations().SetColor(id, color); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"color": color})
}

// ToggleTag adds or removes a catalog tag on a repository.
func (h *DashboardHandler) ToggleTag(c fiber.Ctx) error {
	id, err := repoID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid repo id"})
	}

	tagID := c.Params("tagID")
	if _, ok := domain.TagByID(tagID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown tag"})
	}

	if err := h.dashboard.Customizations().ToggleTag(id, tagID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"tags": h.dashboard.Customizations().TagsFor(id)})
}

// SetAutoRefresh enables or disables the periodic refresh timer.
func (h *DashboardHandler) SetAutoRefresh(c fiber.Ctx) error {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	h.dashboard.SetAutoRefresh(body.Enabled)
	return c.JSON(fiber.Map{"auto_refresh": body.Enabled})
}

// StreamEvents streams refresh completions via SSE so the frontend knows
// when to re-read the snapshot.
func (h *DashboardHandler) StreamEvents(c fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ch := h.dashboard.Events().Subscribe()

	return c.SendStreamWriter(func(w *bufio.Writer) {
		defer h.dashboard.Events().Unsubscribe(ch)

		fmt.Fprintf(w, ": connected\n\n")
		w.Flush()

		for {
			evt, ok := <-ch
			if !ok {
				return
			}
			data, _ := json.Marshal(evt)
			fmt.Fprintf(w, "event: refresh_complete\ndata: %s\n\n", string(data))
			w.Flush()
			slog.Debug("SSE refresh event", "repos", evt.RepoCount, "error", evt.Error)
		}
	})
}

func repoID(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// queryParam distinguishes an absent query param from an empty one, so that
// ?tag= clears the tag filter while omitting it leaves state untouched.
func queryParam(c fiber.Ctx, key string) (string, bool) {
	args := c.RequestCtx().QueryArgs()
	if !args.Has(key) {
		return "", false
	}
	return c.Query(key), true
}
