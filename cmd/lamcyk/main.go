package main

import (
	"os"

	"github.com/dhamidi/lamcyk/lambda"
	"github.com/dhamidi/lamcyk/project"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

type options struct {
	config      string
	grammarFile string
	start       string
	verbosity   int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "lamcyk",
		Short:         "CYK recognizer and free-variable analyzer for lambda expressions",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(opts.verbosity, nil)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVarP(&opts.config, "config", "c", "", "configuration file (default ./"+project.FileName+")")
	flags.StringVarP(&opts.grammarFile, "grammar", "g", "", "EBNF grammar file, overrides the configuration")
	flags.StringVar(&opts.start, "start", "", "start symbol, overrides the configuration")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newFreeCmd(opts))
	rootCmd.AddCommand(newBatchCmd(opts))
	rootCmd.AddCommand(newTableCmd(opts))
	rootCmd.AddCommand(newGrammarCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newUICmd(opts))

	return rootCmd
}

// project loads the configuration and applies flag overrides.
func (o *options) project() (*project.Project, error) {
	var (
		proj *project.Project
		err  error
	)
	if o.config != "" {
		proj, err = project.LoadFile(o.config)
	} else {
		proj, err = project.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.grammarFile != "" {
		proj.GrammarFile = o.grammarFile
		proj.RootDir = "."
	}
	if o.start != "" {
		proj.Start = o.start
	}
	return proj, nil
}

func (o *options) analyzer() (*lambda.Analyzer, error) {
	proj, err := o.project()
	if err != nil {
		return nil, err
	}
	return proj.Analyzer()
}
