// Package parser reads S-expression source text into syntax trees.
//
// The grammar is small enough to be parsed by recursive descent without
// backtracking:
//
//	program := atom*
//	atom    := tuple | literal | symbol
//	tuple   := '(' atom* ')'
//	literal := '"' (char | '\' escape)* '"'
//	symbol  := (char - (space | '(' | ')' | '"'))+
//
// Atoms within a tuple are separated by whitespace. A symbol glued to an
// opening paren or a quote, like `f(x)`, is an error.
package parser

import (
	"strings"
	"unicode"

	"github.com/logice/logice/logic"
	"github.com/logice/logice/runes"
)

var escapeLetters = []string{`f`, `n`, `r`, `t`, `v`, `'`, `"`, `\`}

// Parser is a recursive-descent parser over a Stream.
type Parser struct{}

// Parse parses all atoms within text.
func Parse(text string) ([]logic.Atom, error) {
	var p Parser
	return p.Parse(NewStream(text))
}

// Parse parses atoms until the end of the stream.
func (p *Parser) Parse(s *Stream) ([]logic.Atom, error) {
	var atoms []logic.Atom
	for {
		skipSpaces(s)
		if s.AtEnd() {
			return atoms, nil
		}
		atom, err := p.ParseAtom(s)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
}

func skipSpaces(s *Stream) {
	for {
		ch, ok := s.Peek(0)
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		s.Forward(1)
	}
}

// ParseAtom parses a single atom starting at the current position.
func (p *Parser) ParseAtom(s *Stream) (logic.Atom, error) {
	ch, _ := s.Peek(0)
	switch ch {
	case '(':
		return p.ParseTuple(s)
	case '"':
		pos := s.Position
		text, err := p.ParseLiteral(s)
		if err != nil {
			return nil, err
		}
		return logic.Literal{Token: logic.Token{Value: text, Offset: pos}}, nil
	case ')':
		return nil, newError(UnexpectedRightParen, s, nil)
	}
	pos := s.Position
	text, err := p.ParseSymbol(s)
	if err != nil {
		return nil, err
	}
	token := logic.Token{Value: text, Offset: pos}
	if logic.IsVariable(text) {
		return logic.Variable{Token: token}, nil
	}
	return logic.Identifier{Token: token}, nil
}

// ParseLiteral parses a double-quoted string, returning its unescaped contents.
func (p *Parser) ParseLiteral(s *Stream) (string, error) {
	ch, ok := s.Peek(0)
	if !ok {
		return "", newError(LiteralIsNull, s, []string{`"`})
	}
	if ch != '"' {
		return "", newError(LiteralNotStartWithDoubleQuotation, s, []string{`"`})
	}
	s.Forward(1)
	var b strings.Builder
	for {
		ch, ok := s.Peek(0)
		if !ok {
			return "", newError(LiteralNotEndWithDoubleQuotation, s, []string{`"`})
		}
		switch ch {
		case '"':
			s.Forward(1)
			return b.String(), nil
		case '\\':
			next, ok := s.Peek(1)
			unescaped, isValid := logic.Unescape[next]
			if !(ok && isValid) {
				err := &Error{
					Code:     LiteralContainsInvalidEscapeLetter,
					Position: s.Position,
					Expected: escapeLetters,
				}
				if ok {
					err.Actual = string(next)
				}
				return "", err
			}
			b.WriteRune(unescaped)
			s.Forward(2)
		default:
			b.WriteRune(ch)
			s.Forward(1)
		}
	}
}

// ParseSymbol parses a bare symbol, that ends at whitespace, a closing paren or
// the end of the text.
func (p *Parser) ParseSymbol(s *Stream) (string, error) {
	if s.AtEnd() {
		return "", newError(SymbolIsNull, s, nil)
	}
	var b strings.Builder
	for {
		ch, ok := s.Peek(0)
		if !ok || ((unicode.IsSpace(ch) || ch == ')') && b.Len() > 0) {
			return b.String(), nil
		}
		if runes.IsDelimiter(ch) {
			return "", newError(SymbolContainsInvalidLetter, s, nil)
		}
		b.WriteRune(ch)
		s.Forward(1)
	}
}

// ParseTuple parses a parenthesized sequence of atoms.
func (p *Parser) ParseTuple(s *Stream) (*logic.Tuple, error) {
	ch, ok := s.Peek(0)
	if !ok {
		return nil, newError(TupleIsNull, s, []string{"("})
	}
	if ch != '(' {
		return nil, newError(TupleNotStartWithLeftParen, s, []string{"("})
	}
	tuple := &logic.Tuple{Atoms: []logic.Atom{}, Offset: s.Position}
	s.Forward(1)
	for {
		skipSpaces(s)
		ch, ok := s.Peek(0)
		if !ok {
			return nil, newError(TupleNotEndWithRightParen, s, []string{")"})
		}
		if ch == ')' {
			s.Forward(1)
			return tuple, nil
		}
		atom, err := p.ParseAtom(s)
		if err != nil {
			return nil, err
		}
		tuple.Atoms = append(tuple.Atoms, atom)
	}
}
