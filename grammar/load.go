package grammar

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/ebnf"
)

// Symbols of the built-in lambda grammar.
const (
	LambdaStart    Symbol = "S"
	LambdaBinder   Symbol = "F"
	LambdaVariable Symbol = "S"
)

//go:embed lambda.ebnf
var lambdaSource string

var lambdaGrammar = sync.OnceValue(func() *Grammar {
	g, err := Load("lambda.ebnf", strings.NewReader(lambdaSource), LambdaStart)
	if err != nil {
		panic(err)
	}
	return g
})

// Lambda returns the grammar of parenthesized lambda expressions:
//
//	S = A B | E F | "[a-zA-Z]+(-[a-zA-Z]+)*" .
//	A = C S .   B = S D .   C = "(" .   D = ")" .
//	E = C G .   F = H B .   G = "lambda" .   H = A D .
func Lambda() *Grammar {
	return lambdaGrammar()
}

// LambdaSource returns the EBNF text of the built-in grammar.
func LambdaSource() string {
	return lambdaSource
}

// LoadFile loads a CNF grammar from an EBNF file.
func LoadFile(filename string, start Symbol) (*Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return Load(filename, f, start)
}

// Load parses EBNF source and converts it with FromEBNF.
func Load(filename string, src io.Reader, start Symbol) (*Grammar, error) {
	eg, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(eg, string(start)); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return FromEBNF(eg, start)
}

// FromEBNF converts an EBNF grammar whose alternatives are each either a
// single string token or a sequence of exactly two production names.
// Productions keep their source order.
func FromEBNF(eg ebnf.Grammar, start Symbol) (*Grammar, error) {
	prods := make([]*ebnf.Production, 0, len(eg))
	for _, prod := range eg {
		prods = append(prods, prod)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})

	rules := make([]*Rule, 0, len(prods))
	for _, prod := range prods {
		rule := &Rule{Left: Symbol(prod.Name.String)}

		var exprs []ebnf.Expression
		if alt, ok := prod.Expr.(ebnf.Alternative); ok {
			exprs = alt
		} else {
			exprs = []ebnf.Expression{prod.Expr}
		}

		for _, expr := range exprs {
			alt, err := convertAlternative(expr)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: production %s", prod.Pos(), prod.Name.String)
			}
			rule.Alternatives = append(rule.Alternatives, alt)
		}
		rules = append(rules, rule)
	}

	return New(start, rules...)
}

func convertAlternative(expr ebnf.Expression) (Alternative, error) {
	switch e := expr.(type) {
	case *ebnf.Token:
		return Terminal(e.String), nil
	case ebnf.Sequence:
		if len(e) != 2 {
			return Alternative{}, errors.Errorf("sequence of %d terms is not in Chomsky normal form", len(e))
		}
		first, ok1 := e[0].(*ebnf.Name)
		second, ok2 := e[1].(*ebnf.Name)
		if !ok1 || !ok2 {
			return Alternative{}, errors.New("binary alternative must name two productions")
		}
		return Binary(Symbol(first.String), Symbol(second.String)), nil
	case nil:
		return Alternative{}, errors.New("empty alternative")
	default:
		return Alternative{}, errors.Errorf("unsupported expression %T", expr)
	}
}
