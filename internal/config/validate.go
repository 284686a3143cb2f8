package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRegistry() error {
	backend := strings.ToLower(strings.TrimSpace(c.Registry.Backend))
	switch backend {
	case "sqlite":
		if c.Registry.SQLitePath == "" {
			return fmt.Errorf("registry.sqlite_path is required for the sqlite backend")
		}
	case "firestore":
		if c.Registry.ProjectID == "" {
			return fmt.Errorf("registry.project_id is required for the firestore backend. Set BRANDLINK_PROJECT_ID or edit the config (create one with 'brandlink config init')")
		}
	default:
		return fmt.Errorf("registry.backend: unsupported value %q (want sqlite or firestore)", c.Registry.Backend)
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if m.AutoAcceptThreshold < 0 || m.AutoAcceptThreshold > 100 {
		return fmt.Errorf("matching.auto_accept_threshold %v outside [0, 100]", m.AutoAcceptThreshold)
	}
	if m.ReviewThreshold < 0 || m.ReviewThreshold > 100 {
		return fmt.Errorf("matching.review_threshold %v outside [0, 100]", m.ReviewThreshold)
	}
	if m.AutoAcceptThreshold < m.ReviewThreshold {
		return fmt.Errorf("matching.auto_accept_threshold %v below matching.review_threshold %v", m.AutoAcceptThreshold, m.ReviewThreshold)
	}
	if m.TopMatches < 0 {
		return fmt.Errorf("matching.top_matches must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
