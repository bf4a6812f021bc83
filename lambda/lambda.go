// Package lambda runs the full pipeline over lambda expressions: tokenize,
// recognize, rebuild the parse tree and collect free variables.
package lambda

import (
	"context"
	"errors"
	"runtime"

	"github.com/dhamidi/lamcyk/cyk"
	"github.com/dhamidi/lamcyk/earley"
	"github.com/dhamidi/lamcyk/freevar"
	"github.com/dhamidi/lamcyk/grammar"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("lamcyk.lambda")

// Samples are the inputs of the batch driver.
var Samples = []string{
	"x",
	"y",
	"(lambda (x) (x y))",
	"(lambda (y) (x y))",
	"((lambda(x)x)(x y))",
	"(lambda (y) (lambda (z) (x (y z))))",
	"marmota",
	"lambda(x)x",
	"(lambda(x)x)",
}

// Result is the outcome of analyzing one input.
type Result struct {
	// Index is the position of the input in its batch. Repeated inputs get
	// distinct indexes.
	Index    int
	Input    string
	Tokens   []string
	Accepted bool
	Table    *cyk.Table
	Tree     *cyk.Node
	Free     []string
	Err      error

	// Syntax locates the offending token of a rejected input.
	Syntax *earley.SyntaxError
}

// Analyzer bundles a parser with a free-variable analyzer.
type Analyzer struct {
	parser   *cyk.Parser
	chart    *earley.Parser
	freevars freevar.Analyzer

	// Parallelism bounds the goroutines used by Batch. Zero means
	// GOMAXPROCS.
	Parallelism int
}

// New creates an analyzer for g.
func New(g *grammar.Grammar, fv freevar.Analyzer) *Analyzer {
	return &Analyzer{
		parser:   cyk.NewParser(g),
		chart:    earley.NewParser(g),
		freevars: fv,
	}
}

// Default returns the analyzer for the built-in lambda grammar.
func Default() *Analyzer {
	return New(grammar.Lambda(), freevar.Lambda())
}

// Grammar returns the grammar inputs are recognized with.
func (a *Analyzer) Grammar() *grammar.Grammar {
	return a.parser.Grammar()
}

// Analyze runs the pipeline over text. The result is never nil. Rejection
// is not an error; ErrEmptyInput and ErrReconstruction are.
func (a *Analyzer) Analyze(text string) (*Result, error) {
	res := &Result{Input: text}

	rec, err := a.parser.Parse(text)
	if err != nil {
		res.Err = err
		return res, err
	}
	res.Tokens = rec.Tokens
	res.Table = rec.Table
	res.Accepted = rec.Accepted
	if !rec.Accepted {
		res.Syntax = a.chart.Parse(rec.Tokens).SyntaxError()
		log.Debugf("rejected %q: %v", text, res.Syntax)
		return res, nil
	}

	tree, err := rec.Tree()
	if err != nil {
		res.Err = err
		return res, err
	}
	res.Tree = tree
	res.Free = a.freevars.FreeVariables(tree)
	return res, nil
}

// Batch analyzes inputs concurrently and returns the results in input
// order. Per-input failures are recorded in Result.Err; the returned error
// is only set when ctx is done before all inputs ran, in which case the
// entries of inputs that never ran are nil.
func (a *Analyzer) Batch(ctx context.Context, inputs []string) ([]*Result, error) {
	limit := a.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.Analyze(input)
			if err != nil && !errors.Is(err, cyk.ErrEmptyInput) {
				log.Warningf("case %d %q: %s", i, input, err)
			}
			res.Index = i
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
