package review

import (
	"context"
	"fmt"
	"log/slog"

	"brandlink/internal/logging"
	"brandlink/internal/registry"
)

// Decision is one reviewer choice for one item.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
	DecisionSkip   Decision = "skip"
	DecisionQuit   Decision = "quit"
)

// UI presents items and collects decisions. The CLI implements this over
// an interactive terminal; tests script it.
type UI interface {
	Show(item Item, index, total int)
	Choose() (Decision, error)
}

// Outcome summarizes a finished (or quit) session.
type Outcome struct {
	Accepted  int
	Rejected  int
	Skipped   int
	Errors    int
	Remaining int
	Quit      bool
}

// Session drains a loaded review queue one item at a time and saves what
// remains.
type Session struct {
	store     registry.Store
	queuePath string
	fieldMap  map[string]string
	logger    *slog.Logger
}

// NewSession wires an adjudication session. The registry store should
// already be wrapped for dry runs when the run asks for one.
func NewSession(store registry.Store, queuePath string, fieldMap map[string]string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		store:     store,
		queuePath: queuePath,
		fieldMap:  fieldMap,
		logger:    logger.With(logging.String("component", "review")),
	}
}

// Run walks items in order, applying each decision:
//
//   - accept performs the item's registry writes and drops it
//   - reject drops it without writing
//   - skip keeps it for a later session
//   - quit keeps it and everything after it
//
// The surviving items are saved back in their original relative order, so
// re-running the session is identical to a fresh run minus the decided
// items. An accept whose registry write fails keeps the item so the
// decision can be retried next session.
func (s *Session) Run(ctx context.Context, items []Item, ui UI) (Outcome, error) {
	var outcome Outcome
	remaining := make([]Item, 0, len(items))

	for i, item := range items {
		if outcome.Quit {
			remaining = append(remaining, item)
			continue
		}

		ui.Show(item, i, len(items))
		decision, err := ui.Choose()
		if err != nil {
			return outcome, fmt.Errorf("read decision: %w", err)
		}

		switch decision {
		case DecisionAccept:
			if err := Apply(ctx, s.store, item, s.fieldMap); err != nil {
				outcome.Errors++
				remaining = append(remaining, item)
				s.logger.Error("apply accepted item", logging.String("kind", string(item.Kind())), logging.Error(err))
				continue
			}
			outcome.Accepted++
			s.logger.Info("item accepted", logging.String("kind", string(item.Kind())))
		case DecisionReject:
			outcome.Rejected++
			s.logger.Info("item rejected", logging.String("kind", string(item.Kind())))
		case DecisionSkip:
			outcome.Skipped++
			remaining = append(remaining, item)
		case DecisionQuit:
			outcome.Quit = true
			remaining = append(remaining, item)
		default:
			return outcome, fmt.Errorf("unknown decision %q", decision)
		}
	}

	outcome.Remaining = len(remaining)
	if err := SaveQueue(s.queuePath, remaining); err != nil {
		// The in-memory queue is the only copy of unsaved decisions, so a
		// failed save is fatal for the phase.
		return outcome, fmt.Errorf("save remaining queue: %w", err)
	}

	s.logger.Info("review session saved",
		logging.Int("accepted", outcome.Accepted),
		logging.Int("rejected", outcome.Rejected),
		logging.Int("skipped", outcome.Skipped),
		logging.Int("remaining", outcome.Remaining),
	)
	return outcome, nil
}
