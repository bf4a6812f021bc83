package cyk

import (
	"github.com/dhamidi/lamcyk/grammar"
	"github.com/dhamidi/lamcyk/lex"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when the input holds no tokens.
	ErrEmptyInput = errors.New("cyk: empty input")
	// ErrNotAccepted is returned when a tree is requested for rejected input.
	ErrNotAccepted = errors.New("cyk: input not accepted")
	// ErrReconstruction is returned when the table has no child for a node
	// that the grammar says must exist.
	ErrReconstruction = errors.New("cyk: tree reconstruction failed")
)

// Recognition is the outcome of running CYK over one input.
type Recognition struct {
	Grammar  *grammar.Grammar
	Tokens   []string
	Table    *Table
	Accepted bool
}

// Tree rebuilds the parse tree of an accepted recognition.
func (r *Recognition) Tree() (*Node, error) {
	if !r.Accepted {
		return nil, ErrNotAccepted
	}
	return BuildTree(r.Grammar, r.Table, r.Tokens)
}

// Parser recognizes text against a grammar. It holds no mutable state and
// may be shared between goroutines.
type Parser struct {
	grammar *grammar.Grammar
}

// NewParser creates a parser for g.
func NewParser(g *grammar.Grammar) *Parser {
	return &Parser{grammar: g}
}

// Grammar returns the parser's grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse tokenizes text and recognizes it. Rejection is reported through
// Recognition.Accepted; the only error is ErrEmptyInput.
func (p *Parser) Parse(text string) (*Recognition, error) {
	return p.ParseTokens(lex.Tokenize(text))
}

// ParseTokens recognizes an already tokenized input.
func (p *Parser) ParseTokens(tokens []string) (*Recognition, error) {
	if len(tokens) == 0 {
		return &Recognition{Grammar: p.grammar}, ErrEmptyInput
	}

	table := Build(p.grammar, tokens)
	accepted := table.Accepts(p.grammar.Start)
	log.Debugf("%d tokens, accepted: %t", len(tokens), accepted)

	return &Recognition{
		Grammar:  p.grammar,
		Tokens:   tokens,
		Table:    table,
		Accepted: accepted,
	}, nil
}
