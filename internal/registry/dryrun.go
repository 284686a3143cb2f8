package registry

import (
	"context"
	"log/slog"

	"brandlink/internal/logging"
)

// DryRun wraps a Store so that reads pass through while every write is a
// logged no-op reporting success. Classification, queuing, and statistics
// behave exactly as in a live run.
type DryRun struct {
	inner  Store
	logger *slog.Logger
}

// NewDryRun wraps store. A nil logger falls back to a no-op logger.
func NewDryRun(store Store, logger *slog.Logger) *DryRun {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DryRun{inner: store, logger: logger.With(logging.String("component", "registry-dryrun"))}
}

func (d *DryRun) ListAll(ctx context.Context) ([]Entity, error) {
	return d.inner.ListAll(ctx)
}

func (d *DryRun) MergeField(ctx context.Context, id, field string, updates map[string]any) error {
	d.logger.Info("dry run: skipping field merge",
		logging.String("entity", id),
		logging.String("field", field),
		logging.Int("keys", len(updates)),
	)
	return nil
}

func (d *DryRun) SetFields(ctx context.Context, id string, updates map[string]any) error {
	d.logger.Info("dry run: skipping field set",
		logging.String("entity", id),
		logging.Int("keys", len(updates)),
	)
	return nil
}

func (d *DryRun) Close() error {
	return d.inner.Close()
}
