package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/lamcyk/format"
	"github.com/dhamidi/lamcyk/lambda"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	acceptedColor = color.New(color.FgGreen, color.Bold)
	rejectedColor = color.New(color.FgRed, color.Bold)
)

func newParseCmd(opts *options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <expression>...",
		Short: "Recognize expressions and print their parse trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := opts.analyzer()
			if err != nil {
				return err
			}

			results := make([]*lambda.Result, 0, len(args))
			for i, arg := range args {
				res, err := analyzer.Analyze(arg)
				if err != nil {
					return fmt.Errorf("analyze %q: %w", arg, err)
				}
				res.Index = i
				results = append(results, res)
			}

			out := cmd.OutOrStdout()
			if outputFormat == "tree" {
				for _, res := range results {
					printTree(out, res)
				}
				return nil
			}

			enc, err := format.NewEncoder(outputFormat, out)
			if err != nil {
				return err
			}
			if err := enc.Encode(results...); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, text, json, yaml, table, csv)")

	return cmd
}

func printTree(w io.Writer, res *lambda.Result) {
	if !res.Accepted {
		rejectedColor.Fprint(w, "Rejected!")
		fmt.Fprintf(w, " %s\n", res.Input)
		if res.Syntax != nil {
			fmt.Fprintf(w, "  %s\n", res.Syntax)
		}
		return
	}

	acceptedColor.Fprint(w, "Accepted!")
	fmt.Fprintf(w, " %s\n", res.Input)
	fmt.Fprint(w, res.Tree.Pretty())
	if len(res.Free) == 0 {
		fmt.Fprintln(w, "free: (none)")
	} else {
		fmt.Fprintf(w, "free: %s\n", strings.Join(res.Free, " "))
	}
}
