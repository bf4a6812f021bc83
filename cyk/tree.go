package cyk

import (
	"fmt"
	"strings"

	"github.com/dhamidi/lamcyk/grammar"
	"github.com/pkg/errors"
)

// Node is a node of a binary parse tree. Leaves carry the token they cover;
// interior nodes have exactly two children.
type Node struct {
	Symbol grammar.Symbol
	Token  string
	Left   *Node
	Right  *Node

	// Derives lists the symbols the grammar allows below Symbol.
	Derives []grammar.Symbol
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the tokens of the leaves from left to right.
func (n *Node) Leaves() []string {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []string{n.Token}
	}
	return append(n.Left.Leaves(), n.Right.Leaves()...)
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// String renders the tree on one line, e.g. (A (C "(") (S "x")).
func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("(%s %q)", n.Symbol, n.Token)
	}
	return fmt.Sprintf("(%s %s %s)", n.Symbol, n.Left, n.Right)
}

// Pretty renders the tree with one node per line.
func (n *Node) Pretty() string {
	var sb strings.Builder
	n.pretty(&sb, 0)
	return sb.String()
}

func (n *Node) pretty(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))
	if n.IsLeaf() {
		fmt.Fprintf(sb, "%s %q\n", n.Symbol, n.Token)
		return
	}
	sb.WriteString(string(n.Symbol))
	sb.WriteByte('\n')
	n.Left.pretty(sb, level+1)
	n.Right.pretty(sb, level+1)
}

// BuildTree rebuilds one parse tree of tokens from an accepting table.
//
// Children are found by a nearest-match search around the node's span: the
// left child is the longest prefix span whose cell holds a symbol from
// Derives, the right child the longest such suffix span. This picks one
// derivation for the unambiguous lambda grammar; it is not a general
// disambiguation strategy.
func BuildTree(g *grammar.Grammar, table *Table, tokens []string) (*Node, error) {
	if table == nil || table.Len() != len(tokens) || !table.Accepts(g.Start) {
		return nil, ErrNotAccepted
	}
	b := &treeBuilder{grammar: g, table: table, tokens: tokens}
	return b.expand(g.Start, Span{0, len(tokens) - 1})
}

type treeBuilder struct {
	grammar *grammar.Grammar
	table   *Table
	tokens  []string
}

func (b *treeBuilder) expand(sym grammar.Symbol, span Span) (*Node, error) {
	if span.Start == span.End {
		return &Node{Symbol: sym, Token: b.tokens[span.Start]}, nil
	}

	derives := b.grammar.Derives(sym)
	leftSym, leftSpan, ok := b.searchLeft(span, derives)
	if !ok {
		return nil, errors.Wrapf(ErrReconstruction, "no left child of %s%s", sym, span)
	}
	rightSym, rightSpan, ok := b.searchRight(span, derives)
	if !ok {
		return nil, errors.Wrapf(ErrReconstruction, "no right child of %s%s", sym, span)
	}
	log.Debugf("%s%s -> %s%s %s%s", sym, span, leftSym, leftSpan, rightSym, rightSpan)

	left, err := b.expand(leftSym, leftSpan)
	if err != nil {
		return nil, err
	}
	right, err := b.expand(rightSym, rightSpan)
	if err != nil {
		return nil, err
	}

	return &Node{
		Symbol:  sym,
		Left:    left,
		Right:   right,
		Derives: derives,
	}, nil
}

// searchLeft scans cells (start, e) for e from end-1 down to start.
func (b *treeBuilder) searchLeft(span Span, accept []grammar.Symbol) (grammar.Symbol, Span, bool) {
	for end := span.End - 1; end >= span.Start; end-- {
		if sym, ok := b.table.At(span.Start, end).First(accept); ok {
			return sym, Span{span.Start, end}, true
		}
	}
	return "", Span{}, false
}

// searchRight scans cells (s, end) for s from start+1 up to end.
func (b *treeBuilder) searchRight(span Span, accept []grammar.Symbol) (grammar.Symbol, Span, bool) {
	for start := span.Start + 1; start <= span.End; start++ {
		if sym, ok := b.table.At(start, span.End).First(accept); ok {
			return sym, Span{start, span.End}, true
		}
	}
	return "", Span{}, false
}
