// Package testsupport provides shared fakes and builders for brandlink
// tests.
package testsupport

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"brandlink/internal/config"
	"brandlink/internal/registry"
)

// NewConfig produces a config seeded with unique temp directories per
// test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Registry.SQLitePath = filepath.Join(base, "registry.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

// Write records one registry mutation in call order.
type Write struct {
	Op      string // "merge" or "set"
	ID      string
	Field   string // merge only
	Updates map[string]any
}

// FakeRegistry is an in-memory registry.Store that records writes and can
// be told to fail them.
type FakeRegistry struct {
	mu       sync.Mutex
	Entities []registry.Entity
	Writes   []Write
	// FailWrites makes every write return an error while reads keep
	// working.
	FailWrites bool
	// Fields mirrors the merged state per entity id.
	Fields map[string]map[string]any
}

// NewFakeRegistry builds a fake with entities named by the given display
// names; ids are derived from the position.
func NewFakeRegistry(names ...string) *FakeRegistry {
	f := &FakeRegistry{Fields: make(map[string]map[string]any)}
	for i, name := range names {
		id := fmt.Sprintf("brand-%d", i)
		f.Entities = append(f.Entities, registry.Entity{
			ID:     id,
			Name:   name,
			Fields: map[string]any{"name": name},
		})
		f.Fields[id] = map[string]any{"name": name}
	}
	return f
}

func (f *FakeRegistry) ListAll(ctx context.Context) ([]registry.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]registry.Entity, len(f.Entities))
	copy(out, f.Entities)
	return out, nil
}

func (f *FakeRegistry) MergeField(ctx context.Context, id, field string, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWrites {
		return fmt.Errorf("fake registry: write failure for %s", id)
	}

	fields, ok := f.Fields[id]
	if !ok {
		return fmt.Errorf("%w: %s", registry.ErrNotFound, id)
	}
	existing, _ := fields[field].(map[string]any)
	merged := make(map[string]any, len(existing)+len(updates))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range updates {
		merged[key] = value
	}
	fields[field] = merged

	f.Writes = append(f.Writes, Write{Op: "merge", ID: id, Field: field, Updates: updates})
	return nil
}

func (f *FakeRegistry) SetFields(ctx context.Context, id string, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWrites {
		return fmt.Errorf("fake registry: write failure for %s", id)
	}

	fields, ok := f.Fields[id]
	if !ok {
		return fmt.Errorf("%w: %s", registry.ErrNotFound, id)
	}
	for key, value := range updates {
		fields[key] = value
	}

	f.Writes = append(f.Writes, Write{Op: "set", ID: id, Updates: updates})
	return nil
}

func (f *FakeRegistry) Close() error { return nil }

// WriteCount returns how many writes were recorded.
func (f *FakeRegistry) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Writes)
}
