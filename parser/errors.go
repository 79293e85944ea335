package parser

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a syntax error.
type ErrorCode int

const (
	LiteralIsNull ErrorCode = iota
	LiteralNotStartWithDoubleQuotation
	LiteralNotEndWithDoubleQuotation
	LiteralContainsInvalidEscapeLetter
	SymbolIsNull
	SymbolContainsInvalidLetter
	TupleIsNull
	TupleNotStartWithLeftParen
	TupleNotEndWithRightParen
	UnexpectedRightParen
)

var errorCodeNames = map[ErrorCode]string{
	LiteralIsNull:                      "LiteralIsNull",
	LiteralNotStartWithDoubleQuotation: "LiteralNotStartWithDoubleQuotation",
	LiteralNotEndWithDoubleQuotation:   "LiteralNotEndWithDoubleQuotation",
	LiteralContainsInvalidEscapeLetter: "LiteralContainsInvalidEscapeLetter",
	SymbolIsNull:                       "SymbolIsNull",
	SymbolContainsInvalidLetter:        "SymbolContainsInvalidLetter",
	TupleIsNull:                        "TupleIsNull",
	TupleNotStartWithLeftParen:         "TupleNotStartWithLeftParen",
	TupleNotEndWithRightParen:          "TupleNotEndWithRightParen",
	UnexpectedRightParen:               "UnexpectedRightParen",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is a syntax error at a given position of the source text.
//
// Expected lists what would have been accepted; Actual is what was found,
// empty at the end of the text.
type Error struct {
	Code     ErrorCode
	Position int
	Expected []string
	Actual   string
}

func (err *Error) Error() string {
	actual := "end of input"
	if err.Actual != "" {
		actual = fmt.Sprintf("%q", err.Actual)
	}
	if len(err.Expected) == 0 {
		return fmt.Sprintf("%v at %d: unexpected %s", err.Code, err.Position, actual)
	}
	expected := make([]string, len(err.Expected))
	for i, e := range err.Expected {
		expected[i] = fmt.Sprintf("%q", e)
	}
	return fmt.Sprintf("%v at %d: expected %s, got %s",
		err.Code, err.Position, strings.Join(expected, " or "), actual)
}

func newError(code ErrorCode, s *Stream, expected []string) *Error {
	var actual string
	if ch, ok := s.Peek(0); ok {
		actual = string(ch)
	}
	return &Error{Code: code, Position: s.Position, Expected: expected, Actual: actual}
}
