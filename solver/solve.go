// Package solver runs queries in the background, streaming their solutions
// through a channel.
package solver

import (
	"context"
	"strings"
	"sync"

	"github.com/logice/logice/engine"
	"github.com/logice/logice/errors"
	"github.com/logice/logice/logic"
	"github.com/logice/logice/parser"
	"github.com/logice/logice/program"
)

// Solver holds a program built from all consulted sources.
type Solver struct {
	engine *engine.Engine

	mu    sync.Mutex
	atoms []logic.Atom
	prog  *program.Program
}

func New(opts ...engine.Option) *Solver {
	return &Solver{engine: engine.New(opts...)}
}

// Consult adds the clauses in text to the program. If text has errors, the
// program is left unchanged.
func (s *Solver) Consult(text string) error {
	atoms, err := parser.Parse(text)
	if err != nil {
		return &engine.Error{Code: engine.ParseFailed, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := append(s.atoms[:len(s.atoms):len(s.atoms)], atoms...)
	prog, err := s.engine.Compile(all)
	if err != nil {
		return err
	}
	s.atoms, s.prog = all, prog
	return nil
}

// Program returns the current program, or nil if nothing was consulted.
func (s *Solver) Program() *program.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prog
}

// Solution holds the values of the goal's variables for one answer.
type Solution []engine.Binding

func (s Solution) String() string {
	if len(s) == 0 {
		return "true"
	}
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

// Get returns the value of a variable.
func (s Solution) Get(name string) (string, bool) {
	for _, b := range s {
		if b.Name == name {
			return b.Value, true
		}
	}
	return "", false
}

// Result is either a Solution or an error that ended the query.
type Result struct {
	Solution Solution
	Err      error
}

// Query is like QueryContext with a background context.
func (s *Solver) Query(goal string) (<-chan Result, func()) {
	return s.QueryContext(context.Background(), goal)
}

// QueryContext starts resolving goal against the current program. Solutions
// are sent as they are found, and the channel is closed when the search ends.
//
// Calling the returned func stops the search. A solution found concurrently
// may still be delivered, but cancellation itself is not reported as an
// error. The search goroutine exits once it's cancelled or the channel is
// drained.
func (s *Solver) QueryContext(ctx context.Context, goal string) (<-chan Result, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stream := make(chan Result)
	prog := s.Program()
	go func() {
		defer close(stream)
		send := func(r Result) bool {
			select {
			case stream <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}
		answers, err := s.engine.Query(ctx, prog, engine.Query{Goal: goal})
		if err != nil {
			send(Result{Err: err})
			return
		}
		defer answers.Close()
		for answers.Next() {
			if !send(Result{Solution: answers.Answer().Bindings()}) {
				return
			}
		}
		if err := answers.Err(); err != nil && !errors.Is(err, &engine.Error{Code: engine.Canceled}) {
			send(Result{Err: err})
		}
	}()
	return stream, cancel
}
