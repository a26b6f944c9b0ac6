// Package config provides configuration loading and validation for logpuzzle.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Host is prefixed to every puzzle path. When empty, the host is taken
	// from the log file name, then from DefaultHost.
	Host string `yaml:"host,omitempty"`

	// PathMarker is the path segment a puzzle URL must contain.
	PathMarker string `yaml:"path_marker"`

	// Extension is the suffix a puzzle URL must end with.
	Extension string `yaml:"extension"`

	// KeyLength is the number of characters before the extension used for ordering.
	KeyLength int `yaml:"key_length"`

	TimestampFormat TimestampConfig `yaml:"timestamp_format"`
	Fetch           FetchConfig     `yaml:"fetch"`
	Gallery         GalleryConfig   `yaml:"gallery"`
	Webhooks        []WebhookConfig `yaml:"webhooks,omitempty"`
}

// TimestampConfig defines how to extract request timestamps from log lines.
type TimestampConfig struct {
	// Pattern is a regex that captures the timestamp portion of a log line.
	// Must contain at least one capture group.
	Pattern string `yaml:"pattern"`

	// Layout is the Go time layout string for parsing the captured timestamp.
	Layout string `yaml:"layout"`

	compiledPattern *regexp.Regexp
}

// CompiledPattern returns the pre-compiled regex pattern.
func (t *TimestampConfig) CompiledPattern() *regexp.Regexp {
	return t.compiledPattern
}

// FetchConfig controls image downloads.
type FetchConfig struct {
	// Timeout bounds each download request.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent identifies the client to image servers.
	UserAgent string `yaml:"user_agent,omitempty"`

	// MaxBodySize limits the bytes read per image; 0 means unlimited.
	MaxBodySize int `yaml:"max_body_size,omitempty"`
}

// GalleryConfig controls the generated index page.
type GalleryConfig struct {
	Title string `yaml:"title,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnFailures fires only when at least one download failed (default).
	WebhookTriggerOnFailures WebhookTrigger = "on_failures"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending run reports.
type WebhookConfig struct {
	Name    string         `yaml:"name,omitempty"`
	URL     string         `yaml:"url"`
	Token   string         `yaml:"token,omitempty"`
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`
	Timeout time.Duration  `yaml:"timeout,omitempty"`
}
