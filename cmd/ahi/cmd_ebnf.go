package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/dhamidi/lamcyk/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var (
		startProduction string
		printRules      bool
	)

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse, verify and convert an EBNF grammar file",
		Long:          "Parse and verify an EBNF grammar file. With --start the grammar is also converted into the binary/terminal rule form the CYK parser accepts.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			eg, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			if startProduction == "" {
				return nil
			}

			if err := ebnf.Verify(eg, startProduction); err != nil {
				printErrors(cmd, err)
				return err
			}

			g, err := grammar.FromEBNF(eg, grammar.Symbol(startProduction))
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), err)
				return err
			}

			if printRules {
				fmt.Fprint(cmd.OutOrStdout(), g.String())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d binary productions\n", filename, len(g.Rules), len(g.BinaryRules()))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")
	cmd.Flags().BoolVarP(&printRules, "print", "p", false, "print the converted rules")

	return cmd
}

func printErrors(cmd *cobra.Command, err error) {
	out := cmd.OutOrStdout()
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(out, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(out, err)
	}
}
