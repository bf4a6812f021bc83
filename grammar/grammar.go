// Package grammar holds context-free grammars in Chomsky normal form.
package grammar

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Symbol is a non-terminal identifier.
type Symbol string

// Alternative is one right-hand side of a rule: either a terminal pattern
// or a pair of non-terminals.
type Alternative struct {
	Pattern *Pattern

	First  Symbol
	Second Symbol
}

// Terminal creates a terminal alternative.
func Terminal(pattern string) Alternative {
	return Alternative{Pattern: NewPattern(pattern)}
}

// Binary creates a binary alternative first second.
func Binary(first, second Symbol) Alternative {
	return Alternative{First: first, Second: second}
}

// IsTerminal returns true for Terminal alternatives.
func (a Alternative) IsTerminal() bool {
	return a.Pattern != nil
}

func (a Alternative) String() string {
	if a.IsTerminal() {
		return a.Pattern.String()
	}
	return string(a.First) + " " + string(a.Second)
}

// Rule maps a non-terminal to its ordered alternatives.
type Rule struct {
	Left         Symbol
	Alternatives []Alternative
}

// NewRule creates a rule.
func NewRule(left Symbol, alternatives ...Alternative) *Rule {
	return &Rule{Left: left, Alternatives: alternatives}
}

func (r *Rule) String() string {
	alts := make([]string, 0, len(r.Alternatives))
	for _, alt := range r.Alternatives {
		alts = append(alts, alt.String())
	}
	return fmt.Sprintf("%s = %s .", r.Left, strings.Join(alts, " | "))
}

// BinaryRule is a flattened Left -> First Second production.
type BinaryRule struct {
	Left   Symbol
	First  Symbol
	Second Symbol
}

// Grammar is an immutable CNF grammar. It is safe for concurrent use.
type Grammar struct {
	Start Symbol
	Rules []*Rule

	index    map[Symbol]*Rule
	binary   []BinaryRule
	derives  map[Symbol][]Symbol
	reserved map[string]bool
}

// New builds a grammar from rules in the given order.
func New(start Symbol, rules ...*Rule) (*Grammar, error) {
	g := &Grammar{
		Start:    start,
		Rules:    rules,
		index:    map[Symbol]*Rule{},
		derives:  map[Symbol][]Symbol{},
		reserved: map[string]bool{},
	}

	for _, rule := range rules {
		if _, ok := g.index[rule.Left]; ok {
			return nil, errors.Errorf("grammar: duplicate rule for %s", rule.Left)
		}
		g.index[rule.Left] = rule
	}
	if _, ok := g.index[start]; !ok {
		return nil, errors.Errorf("grammar: no rule for start symbol %s", start)
	}

	for _, rule := range rules {
		seen := map[Symbol]bool{}
		for _, alt := range rule.Alternatives {
			if alt.IsTerminal() {
				if alt.Pattern.Kind == Literal {
					g.reserved[alt.Pattern.Text] = true
				}
				continue
			}
			for _, s := range []Symbol{alt.First, alt.Second} {
				if _, ok := g.index[s]; !ok {
					return nil, errors.Errorf("grammar: %s refers to undefined symbol %s", rule.Left, s)
				}
				if !seen[s] {
					seen[s] = true
					g.derives[rule.Left] = append(g.derives[rule.Left], s)
				}
			}
			g.binary = append(g.binary, BinaryRule{Left: rule.Left, First: alt.First, Second: alt.Second})
		}
	}

	return g, nil
}

// Rule returns the rule for s or nil.
func (g *Grammar) Rule(s Symbol) *Rule {
	return g.index[s]
}

// BinaryRules returns all binary productions in rule order.
func (g *Grammar) BinaryRules() []BinaryRule {
	return g.binary
}

// Derives returns the symbols that occur in the binary alternatives of s,
// in order of first appearance.
func (g *Grammar) Derives(s Symbol) []Symbol {
	return g.derives[s]
}

// Terminals returns the non-terminals with a terminal alternative matching
// token. Regex alternatives never match a reserved word, i.e. a token that
// is the text of some literal alternative.
func (g *Grammar) Terminals(token string) []Symbol {
	var symbols []Symbol
	for _, rule := range g.Rules {
		for _, alt := range rule.Alternatives {
			if g.Matches(alt, token) {
				symbols = append(symbols, rule.Left)
				break
			}
		}
	}
	return symbols
}

// Matches reports whether the terminal alternative alt matches token.
// Binary alternatives never match.
func (g *Grammar) Matches(alt Alternative, token string) bool {
	if !alt.IsTerminal() {
		return false
	}
	if alt.Pattern.Kind == Regex && g.reserved[token] {
		return false
	}
	return alt.Pattern.Match(token)
}

// String renders the grammar in the EBNF form accepted by Load.
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, rule := range g.Rules {
		sb.WriteString(rule.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
