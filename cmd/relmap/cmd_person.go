package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPersonCmd(a *app) *cobra.Command {
	personCmd := &cobra.Command{
		Use:     "person",
		Short:   "Add, rename, remove and find people",
		Aliases: []string{"p"},
	}

	personCmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME...",
			Short: "Add one or more people",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, name := range args {
					if err := a.store.AddPerson(name); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s added to the network.\n", name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename OLD NEW",
			Short: "Rename a person, keeping their relationships",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.RenamePerson(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed '%s' to '%s'.\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm NAME",
			Short:   "Remove a person and all of their relationships",
			Aliases: []string{"remove"},
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.RemovePerson(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s removed from the network.\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "find [SUBSTRING]",
			Short: "List people whose name contains SUBSTRING, ignoring case",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				query := ""
				if len(args) == 1 {
					query = args[0]
				}
				for _, name := range a.store.FindPeople(query) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
	)
	return personCmd
}
