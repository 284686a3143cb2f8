package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"brandlink/internal/config"
	"brandlink/internal/logging"
	"brandlink/internal/registry"
)

type commandContext struct {
	configFlag *string
	dryRunFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, dryRunFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		dryRunFlag: dryRunFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		if c.dryRunFlag != nil && *c.dryRunFlag {
			cfg.Run.DryRun = true
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format)
}

// openStore opens the configured registry backend. When wrapDryRun is set
// and the run asks for a dry run, writes are logged instead of performed.
func (c *commandContext) openStore(ctx context.Context, logger *slog.Logger, wrapDryRun bool) (registry.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var store registry.Store
	switch cfg.Registry.Backend {
	case "sqlite":
		store, err = registry.OpenSQLite(cfg.Registry.SQLitePath)
	case "firestore":
		store, err = registry.OpenFirestore(ctx, registry.FirestoreOptions{
			ProjectID:       cfg.Registry.ProjectID,
			CredentialsFile: cfg.Registry.CredentialsFile,
			Collection:      cfg.Registry.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown registry backend %q", cfg.Registry.Backend)
	}
	if err != nil {
		return nil, err
	}

	if wrapDryRun && cfg.Run.DryRun {
		return registry.NewDryRun(store, logger), nil
	}
	return store, nil
}

// acquireRunLock takes the single-writer run lock. Resolve and review runs
// both mutate the registry and the queue files, so only one may run at a
// time.
func (c *commandContext) acquireRunLock() (*flock.Flock, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another brandlink run holds the lock at %s", cfg.LockPath())
	}
	return lock, nil
}
