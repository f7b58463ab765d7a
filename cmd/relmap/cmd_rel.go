package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/N3moAhead/relmap/internal/relation"
	"github.com/spf13/cobra"
)

func newRelCmd(a *app) *cobra.Command {
	relCmd := &cobra.Command{
		Use:     "rel",
		Short:   "Set, remove and list relationships",
		Aliases: []string{"r"},
	}

	relCmd.AddCommand(
		&cobra.Command{
			Use:   "set A B STATUS",
			Short: "Create or overwrite the relationship between A and B",
			Long: `Create or overwrite the relationship between A and B. STATUS may span
several arguments, e.g. "relmap rel set Alice Bob Best Friends".`,
			Args: cobra.MinimumNArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				status := relation.Status(strings.Join(args[2:], " "))
				if err := a.store.SetRelationship(args[0], args[1], status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Relationship between %s and %s (%s) updated!\n", args[0], args[1], relation.Normalize(status))
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm A B",
			Short:   "Remove the relationship between A and B",
			Aliases: []string{"remove"},
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.RemoveRelationship(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Relationship between %s and %s removed.\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:     "ls NAME",
			Short:   "List the relationships of NAME",
			Aliases: []string{"list"},
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				links, err := a.store.RelationshipsOf(args[0])
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, l := range links {
					fmt.Fprintf(w, "%s\t%s\n", l.Other, l.Status)
				}
				return w.Flush()
			},
		},
	)
	return relCmd
}
