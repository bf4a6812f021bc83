// Package cyk recognizes token sequences with the Cocke-Younger-Kasami
// algorithm and rebuilds a parse tree from the membership table.
package cyk

import (
	"fmt"
	"strings"

	"github.com/dhamidi/lamcyk/grammar"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lamcyk.cyk")

// Cell is the ordered set of symbols deriving one span.
type Cell []grammar.Symbol

// Contains reports whether s is in the cell.
func (c Cell) Contains(s grammar.Symbol) bool {
	for _, sym := range c {
		if sym == s {
			return true
		}
	}
	return false
}

// First returns the first symbol of the cell that is also in accept.
func (c Cell) First(accept []grammar.Symbol) (grammar.Symbol, bool) {
	for _, sym := range c {
		for _, a := range accept {
			if sym == a {
				return sym, true
			}
		}
	}
	return "", false
}

func (c Cell) String() string {
	parts := make([]string, len(c))
	for i, sym := range c {
		parts[i] = string(sym)
	}
	return strings.Join(parts, " ")
}

// Span is an inclusive range of token indexes.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}

// Len returns the number of tokens in the span.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Table is the CYK membership table. Cell (i, j) holds the symbols that
// derive tokens i..j; only cells with j >= i are populated.
type Table struct {
	cells [][]Cell
}

func newTable(n int) *Table {
	cells := make([][]Cell, n)
	for i := range cells {
		cells[i] = make([]Cell, n)
	}
	return &Table{cells: cells}
}

// Len returns the number of tokens the table was built for.
func (t *Table) Len() int {
	return len(t.cells)
}

// At returns cell (i, j). Out of range or j < i yields an empty cell.
func (t *Table) At(i, j int) Cell {
	if i < 0 || j < i || j >= len(t.cells) {
		return nil
	}
	return t.cells[i][j]
}

// Accepts reports whether start derives the whole input.
func (t *Table) Accepts(start grammar.Symbol) bool {
	if len(t.cells) == 0 {
		return false
	}
	return t.At(0, len(t.cells)-1).Contains(start)
}

func (t *Table) add(i, j int, s grammar.Symbol) {
	if t.cells[i][j].Contains(s) {
		return
	}
	t.cells[i][j] = append(t.cells[i][j], s)
}

// Build fills the membership table for tokens.
func Build(g *grammar.Grammar, tokens []string) *Table {
	n := len(tokens)
	t := newTable(n)

	// Spans of length 1 from terminal rules.
	for i, tok := range tokens {
		for _, s := range g.Terminals(tok) {
			t.add(i, i, s)
		}
	}
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf("diagonal: %s", t.row(0))
	}

	rules := g.BinaryRules()
	for length := 2; length <= n; length++ {
		for start := 0; start+length-1 < n; start++ {
			end := start + length - 1
			for split := start; split < end; split++ {
				left, right := t.cells[start][split], t.cells[split+1][end]
				if len(left) == 0 || len(right) == 0 {
					continue
				}
				for _, r := range rules {
					if left.Contains(r.First) && right.Contains(r.Second) {
						t.add(start, end, r.Left)
					}
				}
			}
		}
		if log.AllowLevel(commonlog.Debug) {
			log.Debugf("length %d: %s", length, t.row(length-1))
		}
	}

	return t
}

// row renders all non-empty cells whose span is one longer than offset.
func (t *Table) row(offset int) string {
	var parts []string
	for i := 0; i+offset < len(t.cells); i++ {
		if c := t.cells[i][i+offset]; len(c) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", Span{i, i + offset}, c))
		}
	}
	return strings.Join(parts, " ")
}
