package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"brandlink/internal/config"
	"brandlink/internal/logging"
	"brandlink/internal/match"
	"brandlink/internal/normalize"
	"brandlink/internal/registry"
	"brandlink/internal/review"
)

// Pipeline resolves one run of input rows against a registry snapshot. It
// owns the accumulating queue, unmatched list, and statistics for that run;
// nothing in it is shared across runs.
type Pipeline struct {
	store         registry.Store
	thresholds    match.Thresholds
	topMatches    int
	fieldMap      map[string]string
	singleCompany string
	logger        *slog.Logger

	candidates []match.Candidate
	queue      []review.Item
	unmatched  []review.UnmatchedRecord
	stats      Stats
}

// New constructs a pipeline from run configuration. The store should
// already be wrapped for dry runs when the run asks for one.
func New(cfg *config.Config, store registry.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		store: store,
		thresholds: match.Thresholds{
			AutoAccept:  cfg.Matching.AutoAcceptThreshold,
			Review:      cfg.Matching.ReviewThreshold,
			RejectBelow: cfg.Matching.RejectThreshold,
		},
		topMatches:    cfg.Matching.TopMatches,
		fieldMap:      cfg.Contacts.FieldMap,
		singleCompany: strings.TrimSpace(cfg.Run.SingleCompany),
		logger:        logger.With(logging.String("component", "pipeline")),
	}
}

// LoadSnapshot reads the registry once and normalizes every display name.
// The snapshot order is preserved: it is the tie-break order for matching.
func (p *Pipeline) LoadSnapshot(ctx context.Context) error {
	entities, err := p.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load registry snapshot: %w", err)
	}

	p.candidates = make([]match.Candidate, 0, len(entities))
	for _, entity := range entities {
		p.candidates = append(p.candidates, match.Candidate{
			Normalized: normalize.Name(entity.Name),
			Entity:     entity,
		})
	}

	p.logger.Info("registry snapshot loaded", logging.Int("entities", len(p.candidates)))
	return nil
}

// Queue returns the accumulated review items in append order.
func (p *Pipeline) Queue() []review.Item { return p.queue }

// Unmatched returns the accumulated reject log in append order.
func (p *Pipeline) Unmatched() []review.UnmatchedRecord { return p.unmatched }

// Stats returns the run counters.
func (p *Pipeline) Stats() Stats { return p.stats }

// skipForSingleCompany applies the diagnostic single-company filter.
func (p *Pipeline) skipForSingleCompany(name string) bool {
	return p.singleCompany != "" && !strings.EqualFold(name, p.singleCompany)
}
