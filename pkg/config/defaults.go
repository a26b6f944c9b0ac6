package config

import (
	"os"
	"time"

	"github.com/ccollicutt/logpuzzle/pkg/extractor"
	"github.com/ccollicutt/logpuzzle/pkg/parser"
)

// Default values for configuration.
const (
	DefaultFetchTimeout   = 30 * time.Second
	DefaultMaxBodySize    = 10 * 1024 * 1024
	DefaultWebhookTimeout = 10 * time.Second
	DefaultGalleryTitle   = "Log Puzzle"
)

// DefaultUserAgent is the client identity sent with downloads.
// The CLI appends its version.
var DefaultUserAgent = "logpuzzle"

// Environment variable names.
const (
	EnvHost      = "LOGPUZZLE_HOST"
	EnvUserAgent = "LOGPUZZLE_USER_AGENT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PathMarker: extractor.DefaultPathMarker,
		Extension:  extractor.DefaultExtension,
		KeyLength:  extractor.DefaultKeyLength,
		TimestampFormat: TimestampConfig{
			Pattern: parser.ApacheTimestampPattern,
			Layout:  parser.ApacheTimestampLayout,
		},
		Fetch: FetchConfig{
			Timeout:     DefaultFetchTimeout,
			UserAgent:   DefaultUserAgent,
			MaxBodySize: DefaultMaxBodySize,
		},
		Gallery: GalleryConfig{
			Title: DefaultGalleryTitle,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if host := os.Getenv(EnvHost); host != "" {
		c.Host = host
	}
	if ua := os.Getenv(EnvUserAgent); ua != "" {
		c.Fetch.UserAgent = ua
	}
}
