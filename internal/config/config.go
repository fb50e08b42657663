// Package config loads application settings from the environment with an
// optional .env file, applies defaults and validates the combination.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

// Provider names accepted for the PROVIDER setting.
const (
	ProviderSample = "sample"
	ProviderLive   = "live"
)

// Config holds all configuration for the application.
type Config struct {
	GitHubToken string
	Provider    string

	HTTPAddr     string
	DefaultWeeks int
	FetchTimeout time.Duration
	CacheTTL     time.Duration

	DatabaseURL string
	RefreshCron string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string
}

// Load reads settings from the environment, with a .env file in the
// working directory taken as fallback when present.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *fs.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return loadFrom(v)
}

func loadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("PROVIDER", ProviderSample)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DEFAULT_WEEKS", 12)
	v.SetDefault("FETCH_TIMEOUT", "45s")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("REFRESH_CRON", "@hourly")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	c := &Config{
		GitHubToken:    v.GetString("GITHUB_TOKEN"),
		Provider:       v.GetString("PROVIDER"),
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		DefaultWeeks:   v.GetInt("DEFAULT_WEEKS"),
		FetchTimeout:   v.GetDuration("FETCH_TIMEOUT"),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		RefreshCron:    v.GetString("REFRESH_CRON"),
		CORSOrigins:    splitOrigins(v.GetString("CORS_ORIGINS")),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderSample:
	case ProviderLive:
		if c.GitHubToken == "" {
			return fmt.Errorf("GITHUB_TOKEN is required when PROVIDER=%s", ProviderLive)
		}
	default:
		return fmt.Errorf("PROVIDER must be %q or %q, got %q", ProviderSample, ProviderLive, c.Provider)
	}

	if c.DefaultWeeks < 1 || c.DefaultWeeks > domain.MaxWeeks {
		return fmt.Errorf("DEFAULT_WEEKS must be in [1,%d], got %d", domain.MaxWeeks, c.DefaultWeeks)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %g", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	if c.RefreshCron == "" {
		return fmt.Errorf("REFRESH_CRON must not be empty")
	}
	return nil
}

// WatchlistEnabled reports whether a database was configured for the
// watchlist feature.
func (c *Config) WatchlistEnabled() bool {
	return c.DatabaseURL != ""
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
