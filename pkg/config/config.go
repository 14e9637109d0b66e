package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// Persisted store (bbolt file)
	DBPath string

	// GitHub API
	GitHubAPIURL string // empty = api.github.com
	RepoPageSize int

	// Aggregation bounds
	MaxBranches  int
	CommitWindow int

	// Auto refresh
	RefreshInterval time.Duration

	// Frontend
	FrontendURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "3001"),
		AppName: envOrDefault("APP_NAME", "GitHub Monitor"),

		DBPath: envOrDefault("DB_PATH", "github-monitor.db"),

		GitHubAPIURL: os.Getenv("GITHUB_API_URL"),
		RepoPageSize: envOrDefaultInt("REPO_PAGE_SIZE", 100),

		MaxBranches:  envOrDefaultInt("MAX_BRANCHES", 3),
		CommitWindow: envOrDefaultInt("COMMIT_WINDOW", 10),

		RefreshInterval: time.Duration(envOrDefaultInt("REFRESH_INTERVAL_SECONDS", 60)) * time.Second,

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
