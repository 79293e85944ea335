package program

import (
	"fmt"

	"github.com/logice/logice/logic"
)

// ErrorCode classifies a compilation error.
type ErrorCode int

const (
	IdentifierAsClause ErrorCode = iota + 1
	VariableAsClause
	LiteralAsClause
	WrongClauseFormat
	WrongGoalFormat
	VariableAsFunctor
	TupleAsFunctor
	SubGoalsIsNotTuple
	SubGoalIsNotTuple
)

var errorCodeNames = map[ErrorCode]string{
	IdentifierAsClause: "IdentifierAsClause",
	VariableAsClause:   "VariableAsClause",
	LiteralAsClause:    "LiteralAsClause",
	WrongClauseFormat:  "WrongClauseFormat",
	WrongGoalFormat:    "WrongGoalFormat",
	VariableAsFunctor:  "VariableAsFunctor",
	TupleAsFunctor:     "TupleAsFunctor",
	SubGoalsIsNotTuple: "SubGoalsIsNotTuple",
	SubGoalIsNotTuple:  "SubGoalIsNotTuple",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is a well-formed syntax tree that isn't a valid clause or goal.
type Error struct {
	Code ErrorCode
	// Atom is the offending syntax element.
	Atom logic.Atom
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v at %d: %v", err.Code, err.Atom.Pos(), err.Atom)
}

func compileError(code ErrorCode, atom logic.Atom) *Error {
	return &Error{Code: code, Atom: atom}
}
