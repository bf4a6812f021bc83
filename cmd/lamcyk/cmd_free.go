package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "free <expression>",
		Short: "Print the free variables of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := opts.analyzer()
			if err != nil {
				return err
			}

			res, err := analyzer.Analyze(args[0])
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}
			if !res.Accepted {
				return fmt.Errorf("not an expression: %s", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(res.Free, " "))
			return nil
		},
	}
}
