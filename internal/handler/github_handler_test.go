package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octolens/octolens/internal/cache"
	"github.com/octolens/octolens/internal/domain"
	"github.com/octolens/octolens/internal/port"
	"github.com/octolens/octolens/internal/service"
)

// stubProvider serves canned data, or a fixed error when err is set.
type stubProvider struct {
	user  *domain.UserProfile
	repos []domain.Repository
	err   error
}

func (s *stubProvider) FetchUser(ctx context.Context, username string) (*domain.UserProfile, error) {
	if s.err != nil {
		return nil, fmt.Errorf("fetch user %q: %w", username, s.err)
	}
	return s.user, nil
}

func (s *stubProvider) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.repos, nil
}

func (s *stubProvider) FetchLanguages(ctx context.Context, owner, repo string) (domain.LanguageBytes, error) {
	return domain.LanguageBytes{"Go": 100}, nil
}

func (s *stubProvider) FetchCommits(ctx context.Context, owner, repo string, since time.Time) ([]domain.CommitRecord, error) {
	return nil, nil
}

func (s *stubProvider) RateLimit() domain.RateLimitInfo {
	remaining := 4999
	reset := int64(1700000000)
	return domain.RateLimitInfo{Remaining: &remaining, Reset: &reset}
}

func (s *stubProvider) CheckRateLimit(ctx context.Context) (domain.RateLimitInfo, error) {
	if s.err != nil {
		return domain.RateLimitInfo{}, s.err
	}
	return s.RateLimit(), nil
}

func newTestApp(t *testing.T, provider *stubProvider) *fiber.App {
	t.Helper()

	results, err := cache.New(32, time.Hour)
	require.NoError(t, err)

	svc := service.NewAnalyticsService(provider, results, 30, 20)

	app := fiber.New()
	api := app.Group("/api/v1")
	NewGitHubHandler(svc, provider, 90).Register(api)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestProfile_MissingUsername(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{})

	resp, body := doGet(t, app, "/api/v1/github?type=user")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username is required", body["error"])
}

func TestProfile_MissingType(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{})

	resp, body := doGet(t, app, "/api/v1/github?username=octocat")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Type parameter is required", body["error"])
}

func TestProfile_InvalidType(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{})

	resp, body := doGet(t, app, "/api/v1/github?username=octocat&type=gists")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid type parameter", body["error"])
}

func TestProfile_UserNotFound(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{err: port.ErrNotFound})

	resp, body := doGet(t, app, "/api/v1/github?username=ghost&type=user")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestProfile_RateLimited(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{err: port.ErrRateLimited})

	resp, body := doGet(t, app, "/api/v1/github?username=octocat&type=user")

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body["error"], "Personal Access Token")
}

func TestProfile_UpstreamErrorIsNotLeaked(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{err: &port.UpstreamError{Status: http.StatusBadGateway}})

	resp, body := doGet(t, app, "/api/v1/github?username=octocat&type=user")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to fetch data from GitHub", body["error"])
	assert.NotContains(t, body["error"], "502")
}

func TestProfile_SuccessEnvelope(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{user: &domain.UserProfile{Login: "octocat"}})

	resp, body := doGet(t, app, "/api/v1/github?username=octocat&type=user")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["cached"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "octocat", data["login"])

	rate, ok := body["rateLimit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4999), rate["remaining"])

	// Second identical request is served from cache.
	resp, body = doGet(t, app, "/api/v1/github?username=octocat&type=user")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["cached"])
}

func TestProfile_LanguagesView(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		repos: []domain.Repository{{Name: "web", PushedAt: time.Now()}},
	}
	app := newTestApp(t, provider)

	resp, body := doGet(t, app, "/api/v1/github?username=octocat&type=languages")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["totalRepos"])

	langs, ok := data["languages"].([]any)
	require.True(t, ok)
	require.Len(t, langs, 1)
	row := langs[0].(map[string]any)
	assert.Equal(t, "Go", row["name"])
	assert.Equal(t, "#00add8", row["color"])
	assert.Equal(t, float64(100), row["percentage"])
}

func TestRateLimitEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubProvider{})

	resp, body := doGet(t, app, "/api/v1/ratelimit")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	rate := body["rateLimit"].(map[string]any)
	assert.Equal(t, float64(4999), rate["remaining"])
	assert.Equal(t, float64(1700000000), rate["reset"])
}
