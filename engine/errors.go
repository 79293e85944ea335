package engine

import (
	"fmt"
)

// ErrorCode classifies an engine error.
type ErrorCode int

const (
	NoProgram ErrorCode = iota + 1
	EmptyQuery
	TooManyQuery
	InvalidQuery
	ParseFailed
	CompileFailed
	StepLimit
	Canceled
)

var errorCodeNames = map[ErrorCode]string{
	NoProgram:     "NoProgram",
	EmptyQuery:    "EmptyQuery",
	TooManyQuery:  "TooManyQuery",
	InvalidQuery:  "InvalidQuery",
	ParseFailed:   "ParseFailed",
	CompileFailed: "CompileFailed",
	StepLimit:     "StepLimit",
	Canceled:      "Canceled",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is returned by Load, Query and Answers.Err. Err holds the parser or
// compiler error, if any.
type Error struct {
	Code ErrorCode
	Err  error
}

func (err *Error) Error() string {
	if err.Err == nil {
		return err.Code.String()
	}
	return fmt.Sprintf("%v: %v", err.Code, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Is matches errors with the same code, so that callers may write
// errors.Is(err, &engine.Error{Code: engine.NoProgram}).
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == err.Code
}
