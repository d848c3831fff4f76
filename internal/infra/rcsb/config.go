package rcsb

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "pdb-explorer/pkg/config"
)

// Default remote endpoints.
const (
	DefaultEntryBaseURL = "https://data.rcsb.org/rest/v1/core"
	DefaultFASTABaseURL = "https://www.rcsb.org/fasta/entry"
	DefaultUserAgent    = "pdb-explorer/1.0"
)

// Config holds the configuration for talking to the RCSB endpoints.
//
// Security and resource settings:
//   - Timeout: per-request deadline so a stalled endpoint cannot hang a lookup
//   - MaxBodySize: responses above this size are rejected
//
// Politeness settings:
//   - RequestsPerSecond / Burst: optional outbound token bucket (0 disables it)
//   - Parallelism: maximum concurrent polymer entity fetches per lookup
type Config struct {
	// EntryBaseURL is the base of the data API serving /entry and /polymer_entity.
	// Default: https://data.rcsb.org/rest/v1/core
	EntryBaseURL string `yaml:"entry_base_url"`

	// FASTABaseURL is the base of the FASTA download endpoint ({base}/{ID}).
	// Default: https://www.rcsb.org/fasta/entry
	FASTABaseURL string `yaml:"fasta_base_url"`

	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Default: 10485760 (10MB)
	MaxBodySize int64 `yaml:"max_body_size"`

	// UserAgent identifies this client to the remote.
	UserAgent string `yaml:"user_agent"`

	// RequestsPerSecond caps the sustained outbound request rate.
	// Zero means unlimited.
	// Default: 0
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the token bucket size used when RequestsPerSecond > 0.
	// Default: 10
	Burst int `yaml:"burst"`

	// Parallelism is the maximum number of concurrent polymer entity fetches.
	// Default: 8
	Parallelism int `yaml:"parallelism"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		EntryBaseURL: DefaultEntryBaseURL,
		FASTABaseURL: DefaultFASTABaseURL,
		Timeout:      10 * time.Second,
		MaxBodySize:  10 * 1024 * 1024, // 10MB
		UserAgent:    DefaultUserAgent,
		Burst:        10,
		Parallelism:  8,
	}
}

// Validate checks if the configuration values are valid.
//
// Validation rules:
//   - EntryBaseURL, FASTABaseURL: absolute http(s) URLs
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - RequestsPerSecond: >= 0, Burst >= 1 when limiting
//   - Parallelism: 1-64
func (c *Config) Validate() error {
	if err := validateBaseURL("entry base URL", c.EntryBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("fasta base URL", c.FASTABaseURL); err != nil {
		return err
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must be non-negative, got %v", c.RequestsPerSecond)
	}
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when rate limiting, got %d", c.Burst)
	}

	if c.Parallelism < 1 || c.Parallelism > 64 {
		return fmt.Errorf("parallelism must be between 1 and 64, got %d", c.Parallelism)
	}

	return nil
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must have a host, got %q", name, raw)
	}
	return nil
}

// ApplyEnv overrides c with any RCSB_* environment variables that are set.
// An unparsable value keeps the current setting and logs a warning.
//
// Environment variables:
//   - RCSB_ENTRY_BASE_URL, RCSB_FASTA_BASE_URL, RCSB_USER_AGENT: strings
//   - RCSB_TIMEOUT: duration string, e.g. "10s"
//   - RCSB_MAX_BODY_SIZE: integer in bytes
//   - RCSB_REQUESTS_PER_SECOND: float
//   - RCSB_BURST, RCSB_PARALLELISM: integers
func (c *Config) ApplyEnv() {
	c.EntryBaseURL = pkgconfig.GetEnvString("RCSB_ENTRY_BASE_URL", c.EntryBaseURL)
	c.FASTABaseURL = pkgconfig.GetEnvString("RCSB_FASTA_BASE_URL", c.FASTABaseURL)
	c.UserAgent = pkgconfig.GetEnvString("RCSB_USER_AGENT", c.UserAgent)
	c.Timeout = pkgconfig.GetEnvDuration("RCSB_TIMEOUT", c.Timeout)
	c.MaxBodySize = pkgconfig.GetEnvInt64("RCSB_MAX_BODY_SIZE", c.MaxBodySize)
	c.RequestsPerSecond = pkgconfig.GetEnvFloat("RCSB_REQUESTS_PER_SECOND", c.RequestsPerSecond)
	c.Burst = pkgconfig.GetEnvInt("RCSB_BURST", c.Burst)
	c.Parallelism = pkgconfig.GetEnvInt("RCSB_PARALLELISM", c.Parallelism)
}
