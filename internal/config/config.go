package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// OutputDir holds the review queue, the unmatched list, and the run
	// lock file.
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Registry selects and configures the entity registry backend.
type Registry struct {
	// Backend is "sqlite" or "firestore".
	Backend    string `toml:"backend"`
	SQLitePath string `toml:"sqlite_path"`
	// ProjectID and CredentialsFile apply to the firestore backend. An
	// empty credentials file falls back to application default
	// credentials.
	ProjectID       string `toml:"project_id"`
	CredentialsFile string `toml:"credentials_file"`
	Collection      string `toml:"collection"`
}

// Matching contains the similarity thresholds and review context sizing.
type Matching struct {
	AutoAcceptThreshold float64 `toml:"auto_accept_threshold"`
	ReviewThreshold     float64 `toml:"review_threshold"`
	// RejectThreshold is accepted for compatibility with older configs
	// but has no effect: dispositions are fully determined by the two
	// thresholds above.
	RejectThreshold float64 `toml:"reject_threshold"`
	// TopMatches is how many alternative matches accompany each queued
	// review item.
	TopMatches int `toml:"top_matches"`
}

// Run contains per-run behavior switches.
type Run struct {
	DryRun bool `toml:"dry_run"`
	// SingleCompany restricts processing to one raw company name,
	// compared case-insensitively. Used for diagnostics.
	SingleCompany string `toml:"single_company"`
}

// Contacts maps contact CSV columns onto registry social keys. Only
// non-empty CSV values are pushed.
type Contacts struct {
	FieldMap map[string]string `toml:"field_map"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for brandlink.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Registry Registry `toml:"registry"`
	Matching Matching `toml:"matching"`
	Run      Run      `toml:"run"`
	Contacts Contacts `toml:"contacts"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/brandlink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file actually existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.normalizePaths(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReviewQueuePath is the location of the persisted manual-review queue.
func (c *Config) ReviewQueuePath() string {
	return filepath.Join(c.Paths.OutputDir, "manual_review.json")
}

// UnmatchedPath is the location of the persisted unmatched list.
func (c *Config) UnmatchedPath() string {
	return filepath.Join(c.Paths.OutputDir, "unmatched_companies.json")
}

// LockPath is the run lock location inside the output directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.OutputDir, "brandlink.lock")
}

func resolveConfigPath(path string) (string, bool, error) {
	candidate := strings.TrimSpace(path)
	if candidate == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		candidate = defaultPath
	}

	expanded, err := ExpandPath(candidate)
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, true, nil
}

func applyEnvOverrides(cfg *Config) {
	if projectID := strings.TrimSpace(os.Getenv("BRANDLINK_PROJECT_ID")); projectID != "" {
		cfg.Registry.ProjectID = projectID
	}
	if creds := strings.TrimSpace(os.Getenv("BRANDLINK_CREDENTIALS_FILE")); creds != "" {
		cfg.Registry.CredentialsFile = creds
	}
}
