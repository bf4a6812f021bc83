package main

import (
	"github.com/dhamidi/lamcyk/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := opts.analyzer()
			if err != nil {
				return err
			}
			return lsp.NewServer(analyzer, version).RunStdio()
		},
	}
}
