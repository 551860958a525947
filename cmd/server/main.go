package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/octolens/octolens/internal/adapter/githubapi"
	"github.com/octolens/octolens/internal/cache"
	"github.com/octolens/octolens/internal/handler"
	"github.com/octolens/octolens/internal/middleware"
	"github.com/octolens/octolens/internal/service"
	"github.com/octolens/octolens/pkg/config"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting OctoLens",
		"port", cfg.Port,
		"authenticated", cfg.GitHubToken != "",
		"cache_ttl_minutes", cfg.CacheTTLMinutes,
		"window_days", cfg.DefaultWindowDays,
	)

	// ── Upstream client ──────────────────────────────────────────────────
	provider, err := githubapi.New(githubapi.Options{
		Token:     cfg.GitHubToken,
		BaseURL:   cfg.GitHubAPIURL,
		Timeout:   time.Duration(cfg.RequestTimeout) * time.Second,
		RepoCap:   cfg.RepoFetchCap,
		CommitCap: cfg.CommitFetchCap,
	})
	if err != nil {
		slog.Error("failed to create github client", "error", err)
		os.Exit(1)
	}

	// ── Result cache ─────────────────────────────────────────────────────
	results, err := cache.New(cfg.CacheSize, time.Duration(cfg.CacheTTLMinutes)*time.Minute)
	if err != nil {
		slog.Error("failed to create result cache", "error", err)
		os.Exit(1)
	}

	// ── Services ─────────────────────────────────────────────────────────
	analyticsService := service.NewAnalyticsService(provider, results, cfg.LanguageRepoLimit, cfg.CommitRepoLimit)

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
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "OPTIONS"},
	}))
	app.Use(middleware.Audit())

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api/v1")

	githubHandler := handler.NewGitHubHandler(analyticsService, provider, cfg.DefaultWindowDays)
	githubHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
