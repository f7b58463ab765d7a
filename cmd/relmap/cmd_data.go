package main

import (
	"fmt"

	"github.com/N3moAhead/relmap/internal/relation"
	"github.com/N3moAhead/relmap/internal/render"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the whole network with the content of FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Import(args[0]); err != nil {
				return err
			}
			people, rels := a.store.Len()
			fmt.Fprintf(cmd.OutOrStdout(), "Data imported successfully! %d people, %d relationships.\n", people, rels)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var mirrored bool
	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the whole network to FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Export(args[0], mirrored); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Data exported successfully!")
			return nil
		},
	}
	exportCmd.Flags().BoolVar(&mirrored, "mirrored", false, "write every relationship in both directions")
	return exportCmd
}

func newMapCmd(a *app) *cobra.Command {
	var (
		selected string
		dot      bool
		legend   bool
	)
	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "Render the relationship map",
		Long: `Render the relationship map to stdout, either as colored text or as a
Graphviz graph (--dot). With --selected the person's own relationships are
highlighted and all others dimmed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.store.Snapshot()
			if selected != "" && !snap.Has(selected) {
				return fmt.Errorf("unknown person %q", selected)
			}
			if dot {
				fmt.Fprint(cmd.OutOrStdout(), render.DOT(snap, selected))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Map(snap, selected))
			if legend {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), render.Legend())
			}
			return nil
		},
	}
	mapCmd.Flags().StringVar(&selected, "selected", "", "person to highlight")
	mapCmd.Flags().BoolVar(&dot, "dot", false, "emit Graphviz DOT instead of text")
	mapCmd.Flags().BoolVar(&legend, "legend", true, "print the status color legend")
	return mapCmd
}

func newStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List the built-in relationship statuses",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range relation.Known {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
		},
	}
}
