package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/lamcyk/cyk"
	"github.com/dhamidi/lamcyk/format"
	"github.com/spf13/cobra"
)

func newTableCmd(opts *options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "table <expression>",
		Short: "Dump the CYK table of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat != "table" && outputFormat != "csv" {
				return fmt.Errorf("unknown table format: %s", outputFormat)
			}

			analyzer, err := opts.analyzer()
			if err != nil {
				return err
			}

			res, err := analyzer.Analyze(args[0])
			if err != nil && !errors.Is(err, cyk.ErrReconstruction) {
				return fmt.Errorf("analyze: %w", err)
			}

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, csv)")

	return cmd
}
