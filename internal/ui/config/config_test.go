package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() Config {
	return Config{
		Environment:    "test",
		Host:           "0.0.0.0",
		Port:           3000,
		LogLevel:       "debug",
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		APIBaseURL:     "http://localhost:8080",
		LoginRateLimit: 5,
		LoginRateBurst: 10,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string // substring; "" means valid
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Environment = "production" },
			wantErr: "invalid environment",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "port",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "negative write timeout",
			mutate:  func(c *Config) { c.WriteTimeout = -time.Second },
			wantErr: "write timeout",
		},
		{
			name:    "missing API base URL",
			mutate:  func(c *Config) { c.APIBaseURL = "" },
			wantErr: "API_BASE_URL",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.LoginRateLimit = -1 },
			wantErr: "rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(&cfg)

			err := validateConfig(&cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validateConfig() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateConfig() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateConfig() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"unset", "", nil},
		{"single origin", "https://partners.example.com", []string{"https://partners.example.com"}},
		{"multiple with whitespace", " https://a.example.com , https://b.example.com ", []string{"https://a.example.com", "https://b.example.com"}},
		{"trailing comma", "https://a.example.com,", []string{"https://a.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{AllowedOrigins: tt.raw}
			got := cfg.Origins()
			if len(got) != len(tt.want) {
				t.Fatalf("Origins() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Origins()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
