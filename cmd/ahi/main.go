package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ahi",
		Short: "Development tools for lamcyk grammars",
	}

	rootCmd.AddCommand(newEbnfCmd())

	return rootCmd
}
