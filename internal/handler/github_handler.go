package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/octolens/octolens/internal/port"
	"github.com/octolens/octolens/internal/service"
)

// GitHubHandler dispatches profile analytics requests: it validates the
// query, invokes the aggregation service, and wraps the result in the
// response envelope.
type GitHubHandler struct {
	analytics   *service.AnalyticsService
	provider    port.GitHubProvider
	defaultDays int
}

// NewGitHubHandler creates the handler. defaultDays is the trailing window
// used when the days parameter is absent or malformed.
func NewGitHubHandler(analytics *service.AnalyticsService, provider port.GitHubProvider, defaultDays int) *GitHubHandler {
	return &GitHubHandler{
		analytics:   analytics,
		provider:    provider,
		defaultDays: defaultDays,
	}
}

// Register sets up the analytics routes.
func (h *GitHubHandler) Register(api fiber.Router) {
	api.Get("/github", h.Profile)
	api.Get("/ratelimit", h.RateLimit)
}

// Profile serves all profile views:
//
//	GET /api/v1/github?username=user&type=user
//	GET /api/v1/github?username=user&type=repos
//	GET /api/v1/github?username=user&type=languages
//	GET /api/v1/github?username=user&type=commits&days=90
//	GET /api/v1/github?username=user&type=analytics&days=90
func (h *GitHubHandler) Profile(c fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	viewType := c.Query("type")
	days := queryInt(c, "days", h.defaultDays)

	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username is required"})
	}
	if viewType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type parameter is required"})
	}

	payload, cached, err := h.analytics.View(c.Context(), username, viewType, days)
	if err != nil {
		return h.fail(c, username, viewType, err)
	}

	return c.JSON(fiber.Map{
		"data":      payload,
		"cached":    cached,
		"rateLimit": h.provider.RateLimit(),
	})
}

// RateLimit reports the current upstream quota.
func (h *GitHubHandler) RateLimit(c fiber.Ctx) error {
	info, err := h.provider.CheckRateLimit(c.Context())
	if err != nil {
		return h.fail(c, "", "ratelimit", err)
	}
	return c.JSON(fiber.Map{"rateLimit": info})
}

// fail maps the error taxonomy onto HTTP statuses. Exactly one
// classification is surfaced; upstream status codes are never leaked.
func (h *GitHubHandler) fail(c fiber.Ctx, username, viewType string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidViewType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid type parameter"})
	case errors.Is(err, port.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, port.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Rate limit exceeded. Please add a GitHub Personal Access Token.",
		})
	}

	slog.Error("github request failed", "username", username, "type", viewType, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch data from GitHub"})
}

// queryInt reads an integer query param with a default value.
func queryInt(c fiber.Ctx, key string, defaultVal int) int {
	v := c.Query(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
