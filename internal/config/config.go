package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the tracker service.
// Environment variables are parsed from the ELEFIT_ prefix,
// e.g. ELEFIT_HTTP_PORT, ELEFIT_POSTGRES_DSN.
type Config struct {
	// Build target selects the high-level environment: local or cloud.
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// DBDriver is derived from BuildTarget when set to "auto".
	// Supported: sqlite, postgres, memory.
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"5000"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration (local build target)
	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/tracker.db"`

	// Identity verification and account-linking providers
	GoogleTokenInfoURL string `envconfig:"GOOGLE_TOKENINFO_URL" default:"https://www.googleapis.com/oauth2/v3/tokeninfo"`
	AmazonTokenURL     string `envconfig:"AMAZON_TOKEN_URL" default:"https://api.amazon.com/auth/o2/token"`
	AlexaClientID      string `envconfig:"ALEXA_CLIENT_ID" default:"elefit-alexa-client"`
	AlexaClientSecret  string `envconfig:"ALEXA_CLIENT_SECRET" default:""`

	// Outbound HTTP timeout applied to every provider call.
	OutboundTimeoutSeconds int `envconfig:"OUTBOUND_TIMEOUT_SECONDS" default:"10"`

	// Health monitoring
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to
// "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"sqlite": true, "postgres": true, "memory": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ELEFIT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewForTesting creates a config suitable for unit tests: in-memory store,
// no real provider endpoints.
func NewForTesting() *Config {
	return &Config{
		BuildTarget:               "local",
		DBDriver:                  "memory",
		Environment:               EnvTesting,
		HTTPPort:                  5000,
		GoogleTokenInfoURL:        "http://localhost:0/tokeninfo",
		AmazonTokenURL:            "http://localhost:0/token",
		AlexaClientID:             "test-client",
		AlexaClientSecret:         "test-secret",
		OutboundTimeoutSeconds:    2,
		HealthProbeTimeoutSeconds: 1,
		HealthIntervalSeconds:     1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
