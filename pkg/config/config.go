package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. An empty path yields the
// defaults with environment overrides applied.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors, fills in defaults for zero
// values and compiles regex patterns.
func Validate(cfg *Config) error {
	if err := ValidateHost(cfg.Host); err != nil {
		return fmt.Errorf("host: %w", err)
	}

	if cfg.PathMarker == "" {
		return errors.New("path_marker: must not be empty")
	}

	if !strings.HasPrefix(cfg.Extension, ".") || len(cfg.Extension) < 2 {
		return fmt.Errorf("extension: %q must start with a dot", cfg.Extension)
	}

	if cfg.KeyLength < 1 {
		return errors.New("key_length: must be >= 1")
	}

	if err := validateTimestampFormat(&cfg.TimestampFormat); err != nil {
		return fmt.Errorf("timestamp_format: %w", err)
	}

	if err := validateFetch(&cfg.Fetch); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if cfg.Gallery.Title == "" {
		cfg.Gallery.Title = DefaultGalleryTitle
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

// ValidateHost checks that host is a bare host name, optionally with a scheme.
// An empty host is valid and means "not set".
func ValidateHost(host string) error {
	if host == "" {
		return nil
	}

	raw := host
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid host %q: %w", host, err)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid host %q", host)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("host %q must not contain a path", host)
	}
	return nil
}

func validateTimestampFormat(tf *TimestampConfig) error {
	if tf.Pattern == "" {
		return errors.New("pattern is required")
	}

	re, err := regexp.Compile(tf.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if re.NumSubexp() < 1 {
		return errors.New("pattern must have at least one capture group for the timestamp")
	}

	tf.compiledPattern = re

	if tf.Layout == "" {
		return errors.New("layout is required")
	}

	return nil
}

func validateFetch(fc *FetchConfig) error {
	if fc.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if fc.Timeout == 0 {
		fc.Timeout = DefaultFetchTimeout
	}
	if fc.MaxBodySize < 0 {
		return errors.New("max_body_size cannot be negative")
	}
	if fc.UserAgent == "" {
		fc.UserAgent = DefaultUserAgent
	}
	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		if !wh.Trigger.Valid() {
			return fmt.Errorf("invalid trigger %q (must be on_failures, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnFailures
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// Valid reports whether t is a known trigger.
func (t WebhookTrigger) Valid() bool {
	switch t {
	case WebhookTriggerOnFailures, WebhookTriggerAlways, WebhookTriggerNever:
		return true
	}
	return false
}

// ShouldFire reports whether a webhook with this trigger fires for a run.
func (t WebhookTrigger) ShouldFire(hasFailures bool) bool {
	switch t {
	case WebhookTriggerAlways:
		return true
	case WebhookTriggerNever:
		return false
	default:
		return hasFailures
	}
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
