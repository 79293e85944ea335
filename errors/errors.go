// Package errors provides lazily-formatted error values.
//
// Besides New, it re-exports Is and As so that packages importing this one
// don't need the standard library package under another name.
package errors

import (
	stderrors "errors"
	"fmt"
)

type err struct {
	msg  string
	args []interface{}
}

func (err err) Error() string {
	return fmt.Sprintf(err.msg, err.args...)
}

// Unwrap returns the first argument that is an error, if any.
func (err err) Unwrap() error {
	for _, arg := range err.args {
		if wrapped, ok := arg.(error); ok {
			return wrapped
		}
	}
	return nil
}

// New returns an error whose message is formatted only when requested.
func New(msg string, args ...interface{}) error {
	return err{msg, args}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
