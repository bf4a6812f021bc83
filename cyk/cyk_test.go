package cyk

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/dhamidi/lamcyk/grammar"
	"github.com/dhamidi/lamcyk/lex"
	"github.com/google/go-cmp/cmp"
)

var samples = []string{
	"x",
	"y",
	"(lambda (x) (x y))",
	"(lambda (y) (x y))",
	"((lambda(x)x)(x y))",
	"(lambda (y) (lambda (z) (x (y z))))",
	"marmota",
	"(lambda(x)x)",
}

func TestDataDriven(t *testing.T) {
	p := NewParser(grammar.Lambda())

	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, d *datadriven.TestData) string {
		rec, err := p.Parse(d.Input)
		if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}

		var sb strings.Builder
		switch d.Cmd {
		case "parse":
			fmt.Fprintf(&sb, "tokens: %s\n", strings.Join(rec.Tokens, " "))
			fmt.Fprintf(&sb, "accepted: %t\n", rec.Accepted)
			if rec.Accepted {
				tree, err := rec.Tree()
				if err != nil {
					return fmt.Sprintf("error: %v\n", err)
				}
				fmt.Fprintf(&sb, "tree: %s\n", tree)
			}
		case "cells":
			for offset := 0; offset < rec.Table.Len(); offset++ {
				if row := rec.Table.row(offset); row != "" {
					fmt.Fprintf(&sb, "%d: %s\n", offset+1, row)
				}
			}
		default:
			t.Fatalf("unknown command %q", d.Cmd)
		}
		return sb.String()
	})
}

func TestParseEmptyInput(t *testing.T) {
	p := NewParser(grammar.Lambda())
	for _, input := range []string{"", "   ", "123 !?"} {
		rec, err := p.Parse(input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyInput", input, err)
		}
		if rec.Accepted || rec.Table != nil {
			t.Errorf("Parse(%q) built a table for empty input", input)
		}
		if _, err := rec.Tree(); !errors.Is(err, ErrNotAccepted) {
			t.Errorf("Tree() error = %v, want ErrNotAccepted", err)
		}
	}
}

func TestTreeOfRejectedInput(t *testing.T) {
	p := NewParser(grammar.Lambda())
	rec, err := p.Parse("lambda(x)x")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Accepted {
		t.Fatal("expected rejection")
	}
	if _, err := rec.Tree(); !errors.Is(err, ErrNotAccepted) {
		t.Errorf("Tree() error = %v, want ErrNotAccepted", err)
	}
}

func TestTreeProperties(t *testing.T) {
	p := NewParser(grammar.Lambda())
	for _, input := range samples {
		t.Run(input, func(t *testing.T) {
			rec, err := p.Parse(input)
			if err != nil {
				t.Fatal(err)
			}
			if !rec.Accepted {
				t.Fatal("expected acceptance")
			}
			tree, err := rec.Tree()
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(lex.Tokenize(input), tree.Leaves()); diff != "" {
				t.Errorf("leaves differ from tokens (-want +got):\n%s", diff)
			}
			if d := tree.Depth(); d > len(rec.Tokens) {
				t.Errorf("depth %d exceeds input length %d", d, len(rec.Tokens))
			}
			checkShape(t, tree)

			again, err := NewParser(grammar.Lambda()).Parse(input)
			if err != nil {
				t.Fatal(err)
			}
			tree2, err := again.Tree()
			if err != nil {
				t.Fatal(err)
			}
			if tree.String() != tree2.String() {
				t.Errorf("reconstruction is not deterministic:\n%s\n%s", tree, tree2)
			}
		})
	}
}

func checkShape(t *testing.T, n *Node) {
	t.Helper()
	if n.IsLeaf() {
		if n.Token == "" {
			t.Errorf("leaf %s has no token", n.Symbol)
		}
		return
	}
	if n.Left == nil || n.Right == nil {
		t.Fatalf("interior node %s has a single child", n.Symbol)
	}
	if len(n.Derives) == 0 {
		t.Errorf("interior node %s has no derivable symbols", n.Symbol)
	}
	checkShape(t, n.Left)
	checkShape(t, n.Right)
}

// Acceptance must not depend on the order in which rules add symbols to a
// cell.
func TestAcceptanceIgnoresRuleOrder(t *testing.T) {
	g := grammar.Lambda()
	reversed := make([]*grammar.Rule, len(g.Rules))
	for i, r := range g.Rules {
		alts := make([]grammar.Alternative, len(r.Alternatives))
		for j, alt := range r.Alternatives {
			alts[len(alts)-1-j] = alt
		}
		reversed[len(reversed)-1-i] = grammar.NewRule(r.Left, alts...)
	}
	rg, err := grammar.New(g.Start, reversed...)
	if err != nil {
		t.Fatal(err)
	}

	inputs := append([]string{"lambda(x)x", "(x)", "x y", "((x y)"}, samples...)
	for _, input := range inputs {
		a, _ := NewParser(g).Parse(input)
		b, _ := NewParser(rg).Parse(input)
		if a.Accepted != b.Accepted {
			t.Errorf("%q: accepted %t with grammar order, %t reversed", input, a.Accepted, b.Accepted)
		}
	}
}

func TestBuildDeduplicatesCells(t *testing.T) {
	// Both splits of "a a a" derive S; the cell must hold it once.
	g, err := grammar.New("S",
		grammar.NewRule("S", grammar.Binary("S", "S"), grammar.Terminal("a")),
	)
	if err != nil {
		t.Fatal(err)
	}
	table := Build(g, []string{"a", "a", "a"})
	if diff := cmp.Diff(Cell{"S"}, table.At(0, 2)); diff != "" {
		t.Errorf("cell (0,2) mismatch (-want +got):\n%s", diff)
	}
	if !table.Accepts("S") {
		t.Error("expected acceptance")
	}
}

// The nearest-match search picks the longest prefix and the longest suffix
// independently, so for grammars with several splits the children may
// overlap.
func TestBuildTreeNearestMatch(t *testing.T) {
	g, err := grammar.New("S",
		grammar.NewRule("S", grammar.Binary("S", "S"), grammar.Terminal("a")),
	)
	if err != nil {
		t.Fatal(err)
	}
	tokens := []string{"a", "a", "a"}
	tree, err := BuildTree(g, Build(g, tokens), tokens)
	if err != nil {
		t.Fatal(err)
	}
	want := `(S (S (S "a") (S "a")) (S (S "a") (S "a")))`
	if got := tree.String(); got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
}

func TestBuildTreeInconsistentTable(t *testing.T) {
	g := grammar.Lambda()
	table := newTable(2)
	table.add(0, 1, "S")

	_, err := BuildTree(g, table, []string{"x", "y"})
	if !errors.Is(err, ErrReconstruction) {
		t.Fatalf("error = %v, want ErrReconstruction", err)
	}
	if !strings.Contains(err.Error(), "S[0,1]") {
		t.Errorf("error %q does not name the failing node", err)
	}
}

func TestTableAt(t *testing.T) {
	table := Build(grammar.Lambda(), lex.Tokenize("(x)"))
	if table.At(2, 1) != nil || table.At(-1, 0) != nil || table.At(0, 3) != nil {
		t.Error("expected empty cells outside the upper triangle")
	}
	if !table.At(0, 2).Contains("H") {
		t.Errorf("cell (0,2) = %v, want H", table.At(0, 2))
	}
	if table.Accepts("S") {
		t.Error("(x) must not be accepted")
	}
}

func TestPretty(t *testing.T) {
	rec, err := NewParser(grammar.Lambda()).Parse("(x y)")
	if err != nil {
		t.Fatal(err)
	}
	tree, err := rec.Tree()
	if err != nil {
		t.Fatal(err)
	}
	want := `S
  A
    C "("
    S "x"
  B
    S "y"
    D ")"
`
	if diff := cmp.Diff(want, tree.Pretty()); diff != "" {
		t.Errorf("Pretty mismatch (-want +got):\n%s", diff)
	}
}
