package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalizePaths() error {
	fields := []*string{
		&c.Paths.OutputDir,
		&c.Paths.LogDir,
		&c.Registry.SQLitePath,
		&c.Registry.CredentialsFile,
	}
	for _, field := range fields {
		if *field == "" {
			continue
		}
		expanded, err := ExpandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

// ExpandPath resolves a leading ~ against the current user's home
// directory and makes the path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}

	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}

	absolute, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("absolute path for %s: %w", trimmed, err)
	}
	return absolute, nil
}
