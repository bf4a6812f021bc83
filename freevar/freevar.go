// Package freevar finds the variables of a parse tree that no lambda binds.
package freevar

import (
	"github.com/dhamidi/lamcyk/cyk"
	"github.com/dhamidi/lamcyk/grammar"
)

// Analyzer walks parse trees of a lambda grammar.
//
// Binder is the symbol of an abstraction node whose left subtree holds the
// bound variables and whose right subtree is the body. Variable is the
// symbol of leaves that reference a variable.
//
// Scoping is shallow: a binder only removes its own bound variables from
// the variables of its body. An enclosing binder removes its variables
// again when its own body is collected.
type Analyzer struct {
	Binder   grammar.Symbol
	Variable grammar.Symbol
}

// Lambda returns the analyzer for grammar.Lambda.
func Lambda() Analyzer {
	return Analyzer{Binder: grammar.LambdaBinder, Variable: grammar.LambdaVariable}
}

// FreeVariables returns the free variables of root in left, right, self
// order. Duplicates are kept.
func (a Analyzer) FreeVariables(root *cyk.Node) []string {
	if root == nil {
		return nil
	}

	if root.Symbol == a.Binder {
		bound := a.FreeVariables(root.Left)
		return subtract(a.FreeVariables(root.Right), bound)
	}

	var vars []string
	vars = append(vars, a.FreeVariables(root.Left)...)
	vars = append(vars, a.FreeVariables(root.Right)...)
	if root.IsLeaf() && root.Symbol == a.Variable && root.Token != "" {
		vars = append(vars, root.Token)
	}
	return vars
}

// subtract returns the elements of candidates not in bound, in order.
func subtract(candidates, bound []string) []string {
	exclude := make(map[string]bool, len(bound))
	for _, v := range bound {
		exclude[v] = true
	}

	free := make([]string, 0, len(candidates))
	for _, v := range candidates {
		if !exclude[v] {
			free = append(free, v)
		}
	}
	return free
}
