// Package logic implements the abstract syntax of logic programs.
//
// Programs are written as S-expressions, and each parsed element is an Atom
// of one of four kinds:
//
// * identifier: a bare symbol that doesn't start with an uppercase letter, like `a` or `add`.
//
// * variable: a bare symbol that starts with an uppercase letter, like `X` or `Tail`.
//
// * literal: a double-quoted string, like `"hello world"`. It denotes a symbol as well.
//
// * tuple: a parenthesized sequence of atoms, like `(add (X Y Z))`.
//
// A program is a sequence of tuples of the form `(name)`, `(name args)` or
// `(name args (subgoal1 subgoal2 ...))`, that must be read as "name(args)
// holds if every subgoal holds". A clause without subgoals is a fact.
package logic

import (
	"fmt"
	"strings"
)

// Kind enumerates the atom kinds.
type Kind int

const (
	IdentifierKind Kind = iota
	VariableKind
	LiteralKind
	TupleKind
)

func (k Kind) String() string {
	switch k {
	case IdentifierKind:
		return "Identifier"
	case VariableKind:
		return "Variable"
	case LiteralKind:
		return "Literal"
	case TupleKind:
		return "Tuple"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexeme with its position, in runes, within the source text.
type Token struct {
	Value  string
	Offset int
}

// Atom is a node in the syntax tree. The set of implementations is closed.
type Atom interface {
	fmt.Stringer
	Kind() Kind
	Pos() int
	isAtom()
}

// Identifier is a bare symbol.
type Identifier struct {
	Token
}

// Variable is a bare symbol starting with an uppercase letter.
type Variable struct {
	Token
}

// Literal is a quoted symbol. Its Value holds the unescaped text.
type Literal struct {
	Token
}

// Tuple is a sequence of atoms within parens.
type Tuple struct {
	Atoms  []Atom
	Offset int
}

func (Identifier) isAtom() {}
func (Variable) isAtom()   {}
func (Literal) isAtom()    {}
func (*Tuple) isAtom()     {}

func (Identifier) Kind() Kind { return IdentifierKind }
func (Variable) Kind() Kind   { return VariableKind }
func (Literal) Kind() Kind    { return LiteralKind }
func (*Tuple) Kind() Kind     { return TupleKind }

func (a Identifier) Pos() int { return a.Offset }
func (a Variable) Pos() int   { return a.Offset }
func (a Literal) Pos() int    { return a.Offset }
func (t *Tuple) Pos() int     { return t.Offset }

func (a Identifier) String() string { return a.Value }
func (a Variable) String() string   { return a.Value }
func (a Literal) String() string    { return Quote(a.Value) }

func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, atom := range t.Atoms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(atom.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Len returns the number of elements in the tuple.
func (t *Tuple) Len() int {
	return len(t.Atoms)
}

// SymbolName returns the symbol denoted by an identifier or literal.
func SymbolName(atom Atom) (string, bool) {
	switch a := atom.(type) {
	case Identifier:
		return a.Value, true
	case Literal:
		return a.Value, true
	}
	return "", false
}
