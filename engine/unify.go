package engine

import (
	"fmt"

	"github.com/logice/logice/program"
)

type unifyCode int

const (
	unmatchCell unifyCode = iota + 1
	unmatchArity
	unmatchFunctor
	unmatchArg
)

var unifyCodeNames = map[unifyCode]string{
	unmatchCell:    "UnmatchCell",
	unmatchArity:   "UnmatchArity",
	unmatchFunctor: "UnmatchFunctor",
	unmatchArg:     "UnmatchArg",
}

func (c unifyCode) String() string {
	return unifyCodeNames[c]
}

// unifyError explains why a clause head didn't match a goal. It never leaves
// the package, except as a tracer event.
type unifyError struct {
	code     unifyCode
	src, tgt int
	// For unmatchArg, the mismatch within the argument.
	cause *unifyError
}

func (err *unifyError) Error() string {
	msg := fmt.Sprintf("%v @%d,%d", err.code, err.src, err.tgt)
	if err.cause != nil {
		msg += ": " + err.cause.Error()
	}
	return msg
}

func (err *unifyError) Unwrap() error {
	if err.cause == nil {
		return nil
	}
	return err.cause
}

// unifyTerm unifies the compound terms starting at src and tgt, binding
// variables on the way. Nested terms are visited depth-first with an explicit
// stack of address pairs.
func (ctx *QueryContext) unifyTerm(src, tgt int) *unifyError {
	stack := []int{src, tgt}
	for len(stack) > 0 {
		n := len(stack)
		src, tgt := stack[n-2], stack[n-1]
		stack = stack[:n-2]
		if src == tgt {
			continue
		}
		if ctx.Heap[src] != ctx.Heap[tgt] {
			return &unifyError{code: unmatchArity, src: src, tgt: tgt}
		}
		if ctx.Heap[src+1] != ctx.Heap[tgt+1] {
			return &unifyError{code: unmatchFunctor, src: src + 1, tgt: tgt + 1}
		}
		arity := program.Detach(ctx.Heap[src])
		for i := 0; i < arity; i++ {
			var err *unifyError
			stack, err = ctx.unifyCell(src+2+i, tgt+2+i, stack)
			if err != nil {
				return &unifyError{code: unmatchArg, src: src + 2 + i, tgt: tgt + 2 + i, cause: err}
			}
		}
	}
	return nil
}

// unifyCell unifies the argument cells at src and tgt. When both hold compound
// terms, their addresses are pushed to terms for unifyTerm to visit.
func (ctx *QueryContext) unifyCell(src, tgt int, terms []int) ([]int, *unifyError) {
	c1 := ctx.DeReference(ctx.Heap[src])
	c2 := ctx.DeReference(ctx.Heap[tgt])
	if c1 == c2 {
		return terms, nil
	}
	isVar1, isVar2 := program.IsVariable(c1), program.IsVariable(c2)
	switch {
	case isVar1 && isVar2:
		// Bind the newest variable to the oldest one.
		a1, a2 := program.Detach(c1), program.Detach(c2)
		if a1 > a2 {
			ctx.bind(a1, c2)
		} else {
			ctx.bind(a2, c1)
		}
	case isVar1:
		ctx.bind(program.Detach(c1), c2)
	case isVar2:
		ctx.bind(program.Detach(c2), c1)
	case program.IsReference(c1) && program.IsReference(c2):
		terms = append(terms, program.Detach(c1), program.Detach(c2))
	default:
		return terms, &unifyError{code: unmatchCell, src: src, tgt: tgt}
	}
	return terms, nil
}

// mayMatch returns false if the clause's index vector provably can't match
// the goal at addr. Only constants and compound terms are compared.
func (ctx *QueryContext) mayMatch(addr int, clause *program.Clause) bool {
	for i, x := range clause.Xs {
		cell := ctx.DeReference(ctx.Heap[addr+1+i])
		if !compatible(cell, x) {
			return false
		}
	}
	return true
}

func compatible(c1, c2 program.Cell) bool {
	if program.IsVariable(c1) || program.IsVariable(c2) {
		return true
	}
	isRef1, isRef2 := program.IsReference(c1), program.IsReference(c2)
	switch {
	case isRef1 && isRef2:
		return true
	case isRef1 || isRef2:
		return false
	}
	return c1 == c2
}
