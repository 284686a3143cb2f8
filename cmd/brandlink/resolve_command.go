package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"brandlink/internal/ingest"
	"brandlink/internal/resolve"
	"brandlink/internal/review"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var contactsPath string
	var subsidiariesPath string
	var singleCompany string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve extraction CSVs against the registry",
		Long: "Resolve matches each company name in the given CSVs against the " +
			"registry, pushes confident matches immediately, queues ambiguous " +
			"ones for review, and records the rest as unmatched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(contactsPath) == "" && strings.TrimSpace(subsidiariesPath) == "" {
				return fmt.Errorf("nothing to resolve: pass --contacts and/or --subsidiaries")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(singleCompany) != "" {
				cfg.Run.SingleCompany = singleCompany
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

			pipeline := resolve.New(cfg, store, logger)
			if err := pipeline.LoadSnapshot(cmd.Context()); err != nil {
				return err
			}

			var filterStats ingest.SubsidiaryFilterStats
			if path := strings.TrimSpace(contactsPath); path != "" {
				rows, err := ingest.LoadContacts(path)
				if err != nil {
					return err
				}
				pipeline.ProcessContacts(cmd.Context(), rows)
			}
			if path := strings.TrimSpace(subsidiariesPath); path != "" {
				rows, stats, err := ingest.LoadSubsidiaries(path)
				if err != nil {
					return err
				}
				filterStats = stats
				pipeline.ProcessSubsidiaries(cmd.Context(), rows)
			}

			if err := review.SaveQueue(cfg.ReviewQueuePath(), pipeline.Queue()); err != nil {
				return err
			}
			if err := review.SaveUnmatched(cfg.UnmatchedPath(), pipeline.Unmatched()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			stats := pipeline.Stats()
			rows := [][]string{
				{"Contacts processed", formatCount(stats.ContactsProcessed)},
				{"Contacts auto-accepted", formatCount(stats.ContactsAutoAccepted)},
				{"Contacts queued for review", formatCount(stats.ContactsManualReview)},
				{"Contacts unmatched", formatCount(stats.ContactsRejected)},
				{"Subsidiary groups processed", formatCount(stats.SubsidiaryGroupsProcessed)},
				{"Subsidiary groups auto-accepted", formatCount(stats.SubsidiaryGroupsAutoAccepted)},
				{"Subsidiary groups queued", formatCount(stats.SubsidiaryGroupsManualReview)},
				{"Subsidiary groups unmatched", formatCount(stats.SubsidiaryGroupsRejected)},
				{"Subsidiaries matched", formatCount(stats.SubsidiariesMatched)},
				{"Rows dropped by cleanup", formatCount(filterStats.ExtractionErrors + filterStats.Incomplete)},
				{"Write errors", formatCount(stats.Errors)},
			}
			fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, 1))

			if cfg.Run.DryRun {
				fmt.Fprintln(out, "Dry run: no registry writes were performed")
			}
			fmt.Fprintf(out, "Review queue: %s\n", cfg.ReviewQueuePath())
			fmt.Fprintf(out, "Unmatched list: %s\n", cfg.UnmatchedPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&contactsPath, "contacts", "", "Contacts CSV to resolve")
	cmd.Flags().StringVar(&subsidiariesPath, "subsidiaries", "", "Subsidiaries CSV to resolve")
	cmd.Flags().StringVar(&singleCompany, "single-company", "", "Restrict the run to one raw company name")
	return cmd
}
