// Package dsl has terse constructors for syntax trees, used mostly in tests.
package dsl

import (
	"github.com/logice/logice/logic"
)

func Ident(name string) logic.Identifier {
	return logic.Identifier{Token: logic.Token{Value: name}}
}

func Var(name string) logic.Variable {
	if !logic.IsVariable(name) {
		panic("dsl.Var: not a variable name: " + name)
	}
	return logic.Variable{Token: logic.Token{Value: name}}
}

func Lit(text string) logic.Literal {
	return logic.Literal{Token: logic.Token{Value: text}}
}

func Tuple(atoms ...logic.Atom) *logic.Tuple {
	if atoms == nil {
		atoms = []logic.Atom{}
	}
	return &logic.Tuple{Atoms: atoms}
}

func Atoms(atoms ...logic.Atom) []logic.Atom {
	return atoms
}

// ----

// Fact builds `(name args)`, or `(name)` when args is nil.
func Fact(name string, args logic.Atom) *logic.Tuple {
	if args == nil {
		return Tuple(Ident(name))
	}
	return Tuple(Ident(name), args)
}

// Rule builds `(name args (goal1 goal2 ...))`.
func Rule(name string, args logic.Atom, goals ...logic.Atom) *logic.Tuple {
	return Tuple(Ident(name), args, Tuple(goals...))
}
