package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"brandlink/internal/review"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the pending review queue",
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

			rows := make([][]string, 0, len(items))
			for i, item := range items {
				rows = append(rows, queueRow(i+1, item))
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Type", "Name", "Match", "Score"}, rows, 0, 4))
			return nil
		},
	}
}

func queueRow(position int, item review.Item) []string {
	switch it := item.(type) {
	case review.ContactReview:
		return []string{formatCount(position), string(it.Type), truncate(it.CompanyName, 40), truncate(it.Match.Name, 40), formatScore(it.Score)}
	case review.SubsidiaryReview:
		name := fmt.Sprintf("%s (under %s)", it.SubsidiaryName, it.ParentName)
		return []string{formatCount(position), string(it.Type), truncate(name, 40), truncate(it.Subsidiary.Name, 40), formatScore(it.Score)}
	case review.SubsidiaryGroupReview:
		name := fmt.Sprintf("%s (%d rows)", it.ParentName, len(it.SubsidiaryRows))
		return []string{formatCount(position), string(it.Type), truncate(name, 40), truncate(it.Parent.Name, 40), formatScore(it.Score)}
	default:
		return []string{formatCount(position), string(item.Kind()), "", "", ""}
	}
}

func newUnmatchedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unmatched",
		Short: "Show companies no registry entity came close to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			records, err := review.LoadUnmatched(cfg.UnmatchedPath())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No unmatched companies recorded")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					string(record.Type),
					truncate(record.Name, 40),
					truncate(record.Parent, 40),
					formatScore(record.Score),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Type", "Name", "Parent", "Best score"}, rows, 3))
			return nil
		},
	}
}
