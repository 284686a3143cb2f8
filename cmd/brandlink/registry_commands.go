package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"brandlink/internal/ingest"
	"brandlink/internal/registry"
)

func newRegistryCommand(ctx *commandContext) *cobra.Command {
	registryCmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and maintain the brand registry",
	}

	registryCmd.AddCommand(newRegistryListCommand(ctx))
	registryCmd.AddCommand(newRegistryAddCommand(ctx))
	registryCmd.AddCommand(newRegistryImportCommand(ctx))

	return registryCmd
}

func newRegistryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registry entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd.Context(), nil, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entities, err := store.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entities) == 0 {
				fmt.Fprintln(out, "Registry is empty")
				return nil
			}

			rows := make([][]string, 0, len(entities))
			for _, entity := range entities {
				parent, _ := entity.Fields[registry.FieldParentCompany].(string)
				rows = append(rows, []string{entity.ID, truncate(entity.Name, 50), truncate(parent, 40)})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Parent"}, rows))
			return nil
		},
	}
}

func newRegistryAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add one entity to the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("entity name must not be empty")
			}

			store, err := ctx.openStore(cmd.Context(), nil, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			adder, ok := store.(registry.Adder)
			if !ok {
				return fmt.Errorf("registry backend does not support adding entities")
			}

			entity, err := adder.Add(cmd.Context(), name, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s as %s\n", entity.Name, entity.ID)
			return nil
		},
	}
}

func newRegistryImportCommand(ctx *commandContext) *cobra.Command {
	var nameColumn string

	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import entities from a CSV file",
		Long: "Import reads a header-keyed CSV and adds one entity per row, " +
			"taking the display name from the given column. Rows with an " +
			"empty name are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := ingest.LoadContacts(args[0])
			if err != nil {
				return err
			}

			store, err := ctx.openStore(cmd.Context(), nil, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			adder, ok := store.(registry.Adder)
			if !ok {
				return fmt.Errorf("registry backend does not support adding entities")
			}

			added := 0
			skipped := 0
			for _, row := range rows {
				name := row.Get(nameColumn)
				if name == "" {
					skipped++
					continue
				}
				if _, err := adder.Add(cmd.Context(), name, nil); err != nil {
					return fmt.Errorf("import %q: %w", name, err)
				}
				added++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entities (%d rows skipped)\n", added, skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameColumn, "name-column", "name", "CSV column holding the display name")
	return cmd
}
