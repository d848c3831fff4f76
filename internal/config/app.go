// Package config loads the application configuration: a YAML file, then
// environment overrides, then validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pdb-explorer/internal/infra/rcsb"
	"pdb-explorer/internal/observability/metrics"
	pkgconfig "pdb-explorer/pkg/config"
)

// AppConfig is the full application configuration.
//
// Example file:
//
//	log_level: info
//	server:
//	  addr: ":8080"
//	  request_timeout: 30s
//	rcsb:
//	  timeout: 10s
//	  parallelism: 8
type AppConfig struct {
	LogLevel string       `yaml:"log_level"`
	Server   ServerConfig `yaml:"server"`
	RCSB     rcsb.Config  `yaml:"rcsb"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: :8080
	Addr string `yaml:"addr"`

	// ReadHeaderTimeout bounds how long a client may take to send headers.
	// Default: 10s
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`

	// RequestTimeout bounds a whole request, remote lookups included.
	// Default: 30s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
	// Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RateLimitRPS is the sustained per-client request rate. Zero disables limiting.
	// Default: 0
	RateLimitRPS float64 `yaml:"rate_limit_rps"`

	// RateLimitBurst is the per-client bucket size.
	// Default: 20
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

// Default returns the configuration used when no file or environment overrides are given.
func Default() AppConfig {
	return AppConfig{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			RequestTimeout:    30 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			RateLimitBurst:    20,
		},
		RCSB: rcsb.DefaultConfig(),
	}
}

// Load builds the configuration from Default, the YAML file at path (skipped
// when path is empty) and environment overrides, then validates it.
// The path is expected to come from a trusted source (command-line flag or CONFIG_PATH).
func Load(path string) (AppConfig, error) {
	cfg, err := load(path)
	if err != nil {
		return cfg, err
	}
	metrics.RecordConfigLoaded(time.Now())
	return cfg, nil
}

func load(path string) (AppConfig, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- path is provided by trusted source (CLI flag or env), not user input
		data, err := os.ReadFile(path)
		if err != nil {
			metrics.RecordConfigLoadError("read")
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			metrics.RecordConfigLoadError("parse")
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.RCSB.ApplyEnv()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		metrics.RecordConfigLoadError("validate")
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides server and logging settings.
//
// Environment variables:
//   - LOG_LEVEL: debug, info, warn, error
//   - SERVER_ADDR: listen address
//   - SERVER_READ_HEADER_TIMEOUT, SERVER_REQUEST_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT: duration strings
//   - SERVER_RATE_LIMIT_RPS (float), SERVER_RATE_LIMIT_BURST (integer)
func (c *AppConfig) applyEnv() {
	c.LogLevel = pkgconfig.GetEnvString("LOG_LEVEL", c.LogLevel)
	c.Server.Addr = pkgconfig.GetEnvString("SERVER_ADDR", c.Server.Addr)
	c.Server.ReadHeaderTimeout = pkgconfig.GetEnvDuration("SERVER_READ_HEADER_TIMEOUT", c.Server.ReadHeaderTimeout)
	c.Server.RequestTimeout = pkgconfig.GetEnvDuration("SERVER_REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.ShutdownTimeout = pkgconfig.GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.RateLimitRPS = pkgconfig.GetEnvFloat("SERVER_RATE_LIMIT_RPS", c.Server.RateLimitRPS)
	c.Server.RateLimitBurst = pkgconfig.GetEnvInt("SERVER_RATE_LIMIT_BURST", c.Server.RateLimitBurst)
}

// Validate checks the server and RCSB sections.
func (c *AppConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.RCSB.Validate(); err != nil {
		return fmt.Errorf("rcsb: %w", err)
	}
	return nil
}

// Validate checks the server settings.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return errors.New("addr is required")
	}
	if err := pkgconfig.ValidatePositiveDuration(s.ReadHeaderTimeout); err != nil {
		return fmt.Errorf("read_header_timeout: %w", err)
	}
	if err := pkgconfig.ValidateDurationRange(s.RequestTimeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("request_timeout: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(s.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown_timeout: %w", err)
	}
	if s.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must be non-negative, got %v", s.RateLimitRPS)
	}
	if s.RateLimitRPS > 0 && s.RateLimitBurst < 1 {
		return fmt.Errorf("rate_limit_burst must be at least 1 when rate limiting, got %d", s.RateLimitBurst)
	}
	return nil
}
