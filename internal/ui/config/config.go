package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Config holds the web UI server configuration.
// All values come from the environment; see the field tags for defaults.
type Config struct {
	Environment     string        `env:"ENVIRONMENT,default=dev"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=3000"`
	LogLevel        string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	APIBaseURL      string        `env:"API_BASE_URL,default=http://localhost:8080"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS"` // comma separated; CORS for /ui-api endpoints
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT,default=5"`
	LoginRateBurst  int           `env:"LOGIN_RATE_BURST,default=10"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"perf":    true,
	"prod":    true,
	"staging": true,
}

func NewConfig() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Origins returns the configured CORS origins as a slice (empty when unset).
func (c *Config) Origins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, perf, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}

	if cfg.LoginRateLimit < 0 || cfg.LoginRateBurst < 0 {
		return fmt.Errorf("login rate limit values cannot be negative")
	}

	return nil
}
