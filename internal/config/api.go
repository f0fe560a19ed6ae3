package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/talentgate/talentgate/pkg/formatting"
	"github.com/talentgate/talentgate/pkg/middleware"
	"github.com/talentgate/talentgate/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "TALENTGATE_CORS_ENABLED",
	Origins:          "TALENTGATE_CORS_ORIGINS",
	AllowedMethods:   "TALENTGATE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "TALENTGATE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "TALENTGATE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "TALENTGATE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "TALENTGATE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "TALENTGATE_PAGINATION_MAX_PAGE_SIZE",
}

// RateLimitConfig caps evidence submissions per client per window.
// Only enforced when Redis is enabled.
type RateLimitConfig struct {
	Limit  int    `toml:"limit"`
	Window string `toml:"window"`
}

// WindowDuration returns Window as a time.Duration.
func (c *RateLimitConfig) WindowDuration() time.Duration {
	d, _ := time.ParseDuration(c.Window)
	return d
}

// APIConfig holds API routing, CORS, pagination, and rate limit settings.
type APIConfig struct {
	BasePath        string                `toml:"base_path"`
	MaxEvidenceSize string                `toml:"max_evidence_size"`
	CORS            middleware.CORSConfig `toml:"cors"`
	Pagination      pagination.Config     `toml:"pagination"`
	RateLimit       RateLimitConfig       `toml:"rate_limit"`
}

// MaxEvidenceSizeBytes returns the evidence upload cap in bytes.
func (c *APIConfig) MaxEvidenceSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxEvidenceSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and rate limit configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if _, err := time.ParseDuration(c.RateLimit.Window); err != nil {
		return fmt.Errorf("rate_limit: invalid window: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxEvidenceSize != "" {
		c.MaxEvidenceSize = overlay.MaxEvidenceSize
	}
	if overlay.RateLimit.Limit != 0 {
		c.RateLimit.Limit = overlay.RateLimit.Limit
	}
	if overlay.RateLimit.Window != "" {
		c.RateLimit.Window = overlay.RateLimit.Window
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxEvidenceSize == "" {
		c.MaxEvidenceSize = "10MB"
	}
	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 10
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("TALENTGATE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("TALENTGATE_API_MAX_EVIDENCE_SIZE"); v != "" {
		c.MaxEvidenceSize = v
	}
	if v := os.Getenv("TALENTGATE_API_RATE_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			c.RateLimit.Limit = limit
		}
	}
	if v := os.Getenv("TALENTGATE_API_RATE_WINDOW"); v != "" {
		c.RateLimit.Window = v
	}
}
