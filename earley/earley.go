// Package earley implements an Earley recognizer over CNF grammars.
//
// It accepts the same language as the CYK table but reads the input left to
// right, so for a rejected input it knows the longest prefix that can still
// be extended to a sentence. That prefix is what the syntax errors reported
// by this package point at.
package earley

import (
	"fmt"
	"strings"

	"github.com/dhamidi/lamcyk/grammar"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lamcyk.earley")

// Item is an Earley item: one alternative of a rule, how much of it has
// been read, and the position the item was predicted at.
type Item struct {
	Rule   grammar.Symbol
	Alt    int
	Dot    int
	Origin int
}

func (item Item) String() string {
	return fmt.Sprintf("[%s/%d •%d, %d]", item.Rule, item.Alt, item.Dot, item.Origin)
}

// ItemSet is the set of items at one chart position, in insertion order.
type ItemSet struct {
	items    []Item
	seen     map[Item]bool
	position int
}

func newItemSet(pos int) *ItemSet {
	return &ItemSet{
		seen:     map[Item]bool{},
		position: pos,
	}
}

// Add inserts item unless it is already present.
func (s *ItemSet) Add(item Item) bool {
	if s.seen[item] {
		return false
	}
	s.seen[item] = true
	s.items = append(s.items, item)
	return true
}

func (s *ItemSet) Len() int {
	return len(s.items)
}

// Chart is the result of running the recognizer over a token sequence.
type Chart struct {
	Tokens   []string
	Sets     []*ItemSet
	Accepted bool
}

// Furthest returns the length of the longest prefix of the input that is
// also a prefix of some sentence of the grammar.
func (c *Chart) Furthest() int {
	for i := len(c.Sets) - 1; i > 0; i-- {
		if c.Sets[i].Len() > 0 {
			return i
		}
	}
	return 0
}

// Err returns nil for accepted input and a *SyntaxError otherwise.
func (c *Chart) Err() error {
	if serr := c.SyntaxError(); serr != nil {
		return serr
	}
	return nil
}

// SyntaxError is the typed form of Err.
func (c *Chart) SyntaxError() *SyntaxError {
	if c.Accepted {
		return nil
	}
	furthest := c.Furthest()
	err := &SyntaxError{Index: furthest}
	if furthest < len(c.Tokens) {
		err.Token = c.Tokens[furthest]
	} else {
		err.EOF = true
	}
	return err
}

// SyntaxError locates the token at which no sentence of the grammar can
// continue the input read so far.
type SyntaxError struct {
	// Index of the offending token. Equal to the number of tokens at EOF.
	Index int
	Token string
	EOF   bool
}

func (e *SyntaxError) Error() string {
	if e.EOF {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected %q at token %d", e.Token, e.Index)
}

// Parser runs the recognizer for one grammar. It is safe for concurrent
// use.
type Parser struct {
	grammar *grammar.Grammar
}

func NewParser(g *grammar.Grammar) *Parser {
	return &Parser{grammar: g}
}

// Parse fills the chart for tokens. An empty token sequence is never
// accepted since CNF grammars derive no empty sentence.
func (p *Parser) Parse(tokens []string) *Chart {
	n := len(tokens)
	chart := &Chart{
		Tokens: tokens,
		Sets:   make([]*ItemSet, n+1),
	}
	for i := range chart.Sets {
		chart.Sets[i] = newItemSet(i)
	}

	p.predict(chart.Sets[0], p.grammar.Start)

	for i := 0; i <= n; i++ {
		set := chart.Sets[i]
		// Items may be appended while iterating.
		for j := 0; j < len(set.items); j++ {
			item := set.items[j]
			alt := p.alternative(item)

			switch {
			case item.Dot == length(alt):
				p.complete(chart, i, item)
			case alt.IsTerminal():
				if i < n && p.grammar.Matches(alt, tokens[i]) {
					chart.Sets[i+1].Add(advance(item))
				}
			default:
				p.predict(set, next(alt, item.Dot))
			}
		}
		if log.AllowLevel(commonlog.Debug) && set.Len() > 0 {
			log.Debugf("set %d: %s", i, describe(set))
		}
	}

	for _, item := range chart.Sets[n].items {
		if n > 0 && item.Rule == p.grammar.Start && item.Origin == 0 && item.Dot == length(p.alternative(item)) {
			chart.Accepted = true
			break
		}
	}
	return chart
}

// predict adds every alternative of sym, starting at the set's position.
func (p *Parser) predict(set *ItemSet, sym grammar.Symbol) {
	rule := p.grammar.Rule(sym)
	if rule == nil {
		return
	}
	for a := range rule.Alternatives {
		set.Add(Item{Rule: sym, Alt: a, Origin: set.position})
	}
}

// complete advances the items at the origin of completed that wait for its
// rule. Without empty rules the origin always precedes pos.
func (p *Parser) complete(chart *Chart, pos int, completed Item) {
	for _, item := range chart.Sets[completed.Origin].items {
		alt := p.alternative(item)
		if alt.IsTerminal() || item.Dot == length(alt) {
			continue
		}
		if next(alt, item.Dot) == completed.Rule {
			chart.Sets[pos].Add(advance(item))
		}
	}
}

func (p *Parser) alternative(item Item) grammar.Alternative {
	return p.grammar.Rule(item.Rule).Alternatives[item.Alt]
}

func length(alt grammar.Alternative) int {
	if alt.IsTerminal() {
		return 1
	}
	return 2
}

func next(alt grammar.Alternative, dot int) grammar.Symbol {
	if dot == 0 {
		return alt.First
	}
	return alt.Second
}

func advance(item Item) Item {
	item.Dot++
	return item
}

func describe(set *ItemSet) string {
	parts := make([]string, len(set.items))
	for i, item := range set.items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}
