package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// GitHub upstream
	GitHubToken    string // personal access token (empty = unauthenticated, lower rate limits)
	GitHubAPIURL   string // override for the API base URL (empty = api.github.com)
	RequestTimeout int    // seconds, per upstream call

	// Fetch caps — the binding constraint is the upstream rate limit
	RepoFetchCap      int // max repositories listed per user
	CommitFetchCap    int // max commits listed per repository
	LanguageRepoLimit int // repos sampled for the languages fan-out
	CommitRepoLimit   int // repos sampled for the commits fan-out

	// Result cache
	CacheTTLMinutes int
	CacheSize       int

	// Analytics
	DefaultWindowDays int

	// Frontend
	FrontendURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "8080"),
		AppName: envOrDefault("APP_NAME", "OctoLens"),

		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL:   os.Getenv("GITHUB_API_URL"),
		RequestTimeout: envOrDefaultInt("REQUEST_TIMEOUT_SECONDS", 10),

		RepoFetchCap:      envOrDefaultInt("REPO_FETCH_CAP", 100),
		CommitFetchCap:    envOrDefaultInt("COMMIT_FETCH_CAP", 1000),
		LanguageRepoLimit: envOrDefaultInt("LANGUAGE_REPO_LIMIT", 30),
		CommitRepoLimit:   envOrDefaultInt("COMMIT_REPO_LIMIT", 20),

		CacheTTLMinutes: envOrDefaultInt("CACHE_TTL_MINUTES", 60),
		CacheSize:       envOrDefaultInt("CACHE_SIZE", 256),

		DefaultWindowDays: envOrDefaultInt("DEFAULT_WINDOW_DAYS", 90),

		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
