package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dhamidi/lamcyk/format"
	"github.com/spf13/cobra"
)

func newBatchCmd(opts *options) *cobra.Command {
	var (
		outputFormat string
		parallelism  int
		fromStdin    bool
	)

	cmd := &cobra.Command{
		Use:   "batch [expression]...",
		Short: "Analyze a batch of expressions and print their free variables",
		Long: `Analyze each expression and print "Case #<index>: <free variables>" for
every accepted one. Without arguments the configured inputs are used, or the
built-in samples when none are configured. Rejected inputs are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := opts.project()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("parallelism") {
				proj.Parallelism = parallelism
			}
			analyzer, err := proj.Analyzer()
			if err != nil {
				return err
			}

			inputs := args
			if fromStdin {
				inputs, err = readLines(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else if len(inputs) == 0 {
				inputs = proj.InputsOrSamples()
			}

			results, err := analyzer.Batch(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return enc.Encode(results...)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml, table, csv)")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "j", 0, "maximum concurrent analyses (0 means GOMAXPROCS)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read one expression per line from standard input")

	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
