package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGrammarCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the active grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := opts.project()
			if err != nil {
				return err
			}
			g, err := proj.Grammar()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), g.String())
			return nil
		},
	}
}
