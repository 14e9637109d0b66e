package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	ghadapter "github.com/YanisseIsmaili/github-monitor/internal/adapter/github"
	"github.com/YanisseIsmaili/github-monitor/internal/adapter/store"
	"github.com/YanisseIsmaili/github-monitor/internal/handler"
	"github.com/YanisseIsmaili/github-monitor/internal/middleware"
	"github.com/YanisseIsmaili/github-monitor/internal/service"
	"github.com/YanisseIsmaili/github-monitor/pkg/config"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting GitHub Monitor",
		"port", cfg.Port,
		"db_path", cfg.DBPath,
		"refresh_interval", cfg.RefreshInterval,
	)

	// ── Persisted store ──────────────────────────────────────────────────
	kv, err := store.NewBoltStore(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open persisted store", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	// ── Adapters ─────────────────────────────────────────────────────────
	githubClient, err := ghadapter.NewClient(cfg.GitHubAPIURL, cfg.RepoPageSize)
	if err != nil {
		slog.Error("failed to configure github client", "error", err)
		os.Exit(1)
	}

	// ── Engine ───────────────────────────────────────────────────────────
	customizations := service.NewCustomizations(kv)
	aggregator := service.NewCommitAggregator(githubClient, cfg.MaxBranches, cfg.CommitWindow)
	events := service.NewEventBus()
	dashboard := service.NewDashboard(githubClient, kv, customizations, aggregator, events, cfg.RefreshInterval)

	// Restore persisted customizations and any stored credential
	dashboard.Restore(context.Background())

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// ── Public Routes ────────────────────────────────────────────────────
	authHandler := handler.NewAuthHandler(dashboard)
	authHandler.Register(app)

	catalogHandler := handler.NewCatalogHandler()
	catalogHandler.Register(app)

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Protected Routes ─────────────────────────────────────────────────
	api := app.Group("/api/v1", middleware.RequireCredential(dashboard))

	dashboardHandler := handler.NewDashboardHandler(dashboard)
	dashboardHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
