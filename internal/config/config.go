package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/gcg-eyewear/storefront/pkg/config"
)

// Config holds all configuration for the storefront application.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Backend API root. Without it the application has no backend to
	// talk to, so it is required.
	APIBaseURL string `env:"API_BASE_URL,required"`

	// Admin session persistence.
	SessionFile string `env:"SESSION_FILE" envDefault:".gcg-eyewear/session.json"`

	// Optional view cache. Empty address disables it.
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:""`
	ViewCacheTTL time.Duration `env:"VIEW_CACHE_TTL" envDefault:"30s"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port %d", c.HTTPPort)
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("TRACE_SAMPLE_RATE must be between 0.0 and 1.0, got %g", c.TraceSampleRate)
	}
	return nil
}
