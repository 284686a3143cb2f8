package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"brandlink/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Adjudicate the queued ambiguous matches",
		Long: "Review walks the persisted queue one item at a time. Accept " +
			"performs the item's registry writes, reject discards it, skip " +
			"keeps it for later, quit saves everything not yet decided.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			items, err := review.LoadQueue(cfg.ReviewQueuePath())
			if errors.Is(err, review.ErrNoQueue) {
				fmt.Fprintf(out, "No review queue at %s; run resolve first\n", cfg.ReviewQueuePath())
				return nil
			}
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "Review queue is empty")
				return nil
			}

			if file, ok := cmd.InOrStdin().(*os.File); ok {
				if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
					return fmt.Errorf("review needs an interactive terminal on stdin")
				}
			}

			lock, err := ctx.acquireRunLock()
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			store, err := ctx.openStore(cmd.Context(), logger, true)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session := review.NewSession(store, cfg.ReviewQueuePath(), cfg.Contacts.FieldMap, logger)
			ui := newTerminalUI(cmd.InOrStdin(), out)
			outcome, err := session.Run(cmd.Context(), items, ui)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Accepted", formatCount(outcome.Accepted)},
				{"Rejected", formatCount(outcome.Rejected)},
				{"Skipped", formatCount(outcome.Skipped)},
				{"Apply errors", formatCount(outcome.Errors)},
				{"Remaining in queue", formatCount(outcome.Remaining)},
			}
			fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, 1))
			if cfg.Run.DryRun {
				fmt.Fprintln(out, "Dry run: no registry writes were performed")
			}
			return nil
		},
	}
}

// terminalUI prompts on the command's input stream. An input error or EOF
// is treated as quit so undecided items are saved.
type terminalUI struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalUI(in io.Reader, out io.Writer) *terminalUI {
	return &terminalUI{in: bufio.NewReader(in), out: out}
}

func (u *terminalUI) Show(item review.Item, index, total int) {
	fmt.Fprintf(u.out, "\n[%d/%d] ", index+1, total)

	switch it := item.(type) {
	case review.ContactReview:
		fmt.Fprintf(u.out, "contact  %q\n", it.CompanyName)
		fmt.Fprintf(u.out, "  matched: %s (score %s)\n", it.Match.Name, formatScore(it.Score))
		u.showAlternatives(it.Alternatives)
	case review.SubsidiaryReview:
		fmt.Fprintf(u.out, "subsidiary  %q under %q\n", it.SubsidiaryName, it.ParentName)
		fmt.Fprintf(u.out, "  matched: %s (score %s)\n", it.Subsidiary.Name, formatScore(it.Score))
		fmt.Fprintf(u.out, "  parent:  %s\n", it.Parent.Name)
		u.showAlternatives(it.Alternatives)
	case review.SubsidiaryGroupReview:
		fmt.Fprintf(u.out, "parent  %q with %d subsidiary rows\n", it.ParentName, len(it.SubsidiaryRows))
		fmt.Fprintf(u.out, "  matched: %s (score %s)\n", it.Parent.Name, formatScore(it.Score))
		if len(it.MatchedChildren) > 0 {
			fmt.Fprintf(u.out, "  accept links %d already-matched subsidiaries:\n", len(it.MatchedChildren))
			for _, child := range it.MatchedChildren {
				fmt.Fprintf(u.out, "    %s -> %s (score %s)\n", truncate(child.Name, 40), child.Entity.Name, formatScore(child.Score))
			}
		}
		u.showAlternatives(it.Alternatives)
	default:
		fmt.Fprintf(u.out, "%s item\n", item.Kind())
	}
}

func (u *terminalUI) showAlternatives(alternatives []review.Alternative) {
	if len(alternatives) == 0 {
		return
	}
	fmt.Fprintln(u.out, "  alternatives:")
	for _, alt := range alternatives {
		fmt.Fprintf(u.out, "    %s (score %s)\n", alt.Entity.Name, formatScore(alt.Score))
	}
}

func (u *terminalUI) Choose() (review.Decision, error) {
	for {
		fmt.Fprint(u.out, "[a]ccept  [r]eject  [s]kip  [q]uit > ")
		line, err := u.in.ReadString('\n')
		if err != nil && line == "" {
			return review.DecisionQuit, nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "accept":
			return review.DecisionAccept, nil
		case "r", "reject":
			return review.DecisionReject, nil
		case "s", "skip":
			return review.DecisionSkip, nil
		case "q", "quit":
			return review.DecisionQuit, nil
		default:
			fmt.Fprintln(u.out, "unrecognized choice")
		}
	}
}
