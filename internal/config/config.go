// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Alert store backends.
const (
	AlertStoreMemory = "memory"
	AlertStoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Search   SearchConfig
	Primary  PrimaryConfig
	Scrapers ScraperConfig
	Alerts   AlertConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
}

// SearchConfig holds the orchestrator timeouts.
type SearchConfig struct {
	// Deadline bounds a whole search, fallback phase included
	Deadline time.Duration `env:"SEARCH_DEADLINE" envDefault:"8s"`

	// SourceTimeout applies to sources without their own timeout
	SourceTimeout time.Duration `env:"SOURCE_TIMEOUT" envDefault:"3s"`
}

// PrimaryConfig holds the structured API settings.
type PrimaryConfig struct {
	BaseURL     string        `env:"PRIMARY_BASE_URL" envDefault:"http://localhost:3001"`
	Timeout     time.Duration `env:"PRIMARY_TIMEOUT"`
	MaxAttempts int           `env:"PRIMARY_MAX_ATTEMPTS" envDefault:"2"`
}

// ScraperConfig holds the fallback scraper settings.
// An empty base URL disables that scraper.
type ScraperConfig struct {
	CardsiteBaseURL  string        `env:"CARDSITE_BASE_URL"`
	CardsiteTimeout  time.Duration `env:"CARDSITE_TIMEOUT"`
	TablesiteBaseURL string        `env:"TABLESITE_BASE_URL"`
	TablesiteTimeout time.Duration `env:"TABLESITE_TIMEOUT"`

	RateLimit float64 `env:"SCRAPER_RATE_LIMIT" envDefault:"2"`
	Burst     int     `env:"SCRAPER_BURST" envDefault:"4"`
	UserAgent string  `env:"SCRAPER_USER_AGENT" envDefault:"fallback-flight-aggregator/1.0"`

	// Timezone interprets timestamps that carry no offset
	Timezone string `env:"SOURCE_TIMEZONE" envDefault:"UTC"`

	// KnownAirlines are the canonical spellings scraped names snap to
	KnownAirlines []string `env:"KNOWN_AIRLINES" envSeparator:"," envDefault:"Emirates,Qatar Airways,SriLankan Airlines,flydubai,Air Arabia,Etihad Airways"`
}

// AlertConfig selects and configures the alert store.
type AlertConfig struct {
	Store         string `env:"ALERT_STORE" envDefault:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_KEY_PREFIX" envDefault:"flightagg:"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}

	validStores := map[string]bool{AlertStoreMemory: true, AlertStoreRedis: true}
	if !validStores[c.Alerts.Store] {
		return fmt.Errorf("ALERT_STORE must be one of: memory, redis; got %q", c.Alerts.Store)
	}
	if c.Alerts.Store == AlertStoreRedis && c.Alerts.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when ALERT_STORE=redis")
	}
	if c.Alerts.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", c.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[c.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", c.App.Env)
	}

	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.Deadline <= 0 {
		return fmt.Errorf("SEARCH_DEADLINE must be positive")
	}
	if c.Search.SourceTimeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT must be positive")
	}
	if c.Search.SourceTimeout >= c.Search.Deadline {
		return fmt.Errorf("SOURCE_TIMEOUT (%s) should be less than SEARCH_DEADLINE (%s)",
			c.Search.SourceTimeout, c.Search.Deadline)
	}

	overrides := map[string]time.Duration{
		"PRIMARY_TIMEOUT":   c.Primary.Timeout,
		"CARDSITE_TIMEOUT":  c.Scrapers.CardsiteTimeout,
		"TABLESITE_TIMEOUT": c.Scrapers.TablesiteTimeout,
	}
	for name, d := range overrides {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
		if d >= c.Search.Deadline {
			return fmt.Errorf("%s (%s) should be less than SEARCH_DEADLINE (%s)", name, d, c.Search.Deadline)
		}
	}
	return nil
}

func (c *Config) validateSources() error {
	if err := validateURL("PRIMARY_BASE_URL", c.Primary.BaseURL, true); err != nil {
		return err
	}
	if c.Primary.MaxAttempts < 1 {
		return fmt.Errorf("PRIMARY_MAX_ATTEMPTS must be at least 1, got %d", c.Primary.MaxAttempts)
	}
	if err := validateURL("CARDSITE_BASE_URL", c.Scrapers.CardsiteBaseURL, false); err != nil {
		return err
	}
	if err := validateURL("TABLESITE_BASE_URL", c.Scrapers.TablesiteBaseURL, false); err != nil {
		return err
	}
	if c.Scrapers.RateLimit > 0 && c.Scrapers.Burst < 1 {
		return fmt.Errorf("SCRAPER_BURST must be at least 1 when SCRAPER_RATE_LIMIT is set")
	}
	if _, err := time.LoadLocation(c.Scrapers.Timezone); err != nil {
		return fmt.Errorf("SOURCE_TIMEZONE %q: %w", c.Scrapers.Timezone, err)
	}
	return nil
}

func validateURL(name, raw string, required bool) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

// SourceTimeouts returns the per-source overrides that are set, keyed by
// source name.
func (c *Config) SourceTimeouts(primary, cardsite, tablesite string) map[string]time.Duration {
	out := make(map[string]time.Duration)
	if c.Primary.Timeout > 0 {
		out[primary] = c.Primary.Timeout
	}
	if c.Scrapers.CardsiteBaseURL != "" && c.Scrapers.CardsiteTimeout > 0 {
		out[cardsite] = c.Scrapers.CardsiteTimeout
	}
	if c.Scrapers.TablesiteBaseURL != "" && c.Scrapers.TablesiteTimeout > 0 {
		out[tablesite] = c.Scrapers.TablesiteTimeout
	}
	return out
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
