// Package engine resolves queries against compiled programs.
//
// A query goal is compiled with the program's symbols, and copied to the heap
// of a fresh QueryContext. Resolution is depth-first: candidate clauses are
// tried in definition order, each one copied to the heap and unified with the
// goal, then its subgoals are resolved left to right. Every binding is
// recorded in the frame pushed for the clause attempt, so that backtracking
// restores the heap exactly.
//
// Answers are produced lazily by an Answers cursor, that keeps the search
// state between calls to Next.
package engine

import (
	"context"

	"github.com/logice/logice/errors"
	"github.com/logice/logice/logic"
	"github.com/logice/logice/parser"
	"github.com/logice/logice/program"

	"go.uber.org/zap"
)

// Engine loads programs and runs queries. It holds only configuration, and
// may be used concurrently.
type Engine struct {
	tracer   Tracer
	logger   *zap.Logger
	maxSteps int
	indexing bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer sets the tracer notified of search steps.
func WithTracer(tracer Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

// WithLogger sets the logger for load and query events.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMaxSteps limits the number of clause attempts per query. Zero means no
// limit.
func WithMaxSteps(n int) Option {
	return func(e *Engine) { e.maxSteps = n }
}

// WithIndexing enables skipping clauses whose head can't match the goal,
// according to their index vector. It's on by default.
func WithIndexing(enabled bool) Option {
	return func(e *Engine) { e.indexing = enabled }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		tracer:   NopTracer{},
		logger:   zap.NewNop(),
		indexing: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load parses and compiles a program.
func (e *Engine) Load(text string) (*program.Program, error) {
	atoms, err := parser.Parse(text)
	if err != nil {
		e.logger.Debug("parse failed", zap.Error(err))
		return nil, &Error{Code: ParseFailed, Err: err}
	}
	return e.Compile(atoms)
}

// Compile compiles already parsed clauses into a program.
func (e *Engine) Compile(atoms []logic.Atom) (*program.Program, error) {
	prog, err := program.Compile(atoms, nil)
	if err != nil {
		e.logger.Debug("compile failed", zap.Error(err))
		return nil, &Error{Code: CompileFailed, Err: err}
	}
	e.logger.Debug("program loaded",
		zap.Int("cells", prog.Size()),
		zap.Int("symbols", len(prog.Symbols)),
		zap.Int("keys", len(prog.Keys)))
	return prog, nil
}

// Query is a request to prove a goal, written as a single tuple `(name)` or
// `(name args)`.
type Query struct {
	Goal string
}

// Query prepares the resolution of q against prog. Errors in the goal are
// returned immediately; answers are computed on demand by the cursor.
//
// The context is checked at each step, and its cancellation ends the search.
func (e *Engine) Query(ctx context.Context, prog *program.Program, q Query) (*Answers, error) {
	if prog == nil {
		return nil, &Error{Code: NoProgram}
	}
	atoms, err := parser.Parse(q.Goal)
	if err != nil {
		return nil, &Error{Code: ParseFailed, Err: err}
	}
	switch len(atoms) {
	case 0:
		return nil, &Error{Code: EmptyQuery}
	case 1:
	default:
		return nil, &Error{Code: TooManyQuery}
	}
	t, ok := atoms[0].(*logic.Tuple)
	if !ok || t.Len() < 1 || t.Len() > 2 {
		return nil, &Error{Code: InvalidQuery, Err: errors.New("goal must be (name) or (name args), got %v", atoms[0])}
	}
	goal, err := program.Compile(atoms, prog.Symbols)
	if err != nil {
		return nil, &Error{Code: CompileFailed, Err: err}
	}
	qctx := NewQueryContext(prog, goal.Symbols)
	target := qctx.CopyToHeap(goal.Cells, goal.Clauses[goal.Keys[0]][0])
	a := newAnswers(ctx, e, qctx, target)
	e.logger.Debug("query started", zap.String("id", a.id), zap.String("goal", q.Goal))
	return a, nil
}

// Answer is a successful resolution of the query goal.
//
// The heap of Context reflects the bindings of this answer only until the
// cursor advances.
type Answer struct {
	Context *QueryContext
	// Clause is the program clause whose head matched the goal.
	Clause *program.Clause
	// Target is the goal as laid out in the heap.
	Target *program.Clause
}

// Binding is the value of a goal variable, in source syntax.
type Binding struct {
	Name  string
	Value string
}

func (b Binding) String() string {
	return b.Name + " = " + b.Value
}

// Bindings lists the goal's variables in order of appearance, with their values.
// Unbound variables are rendered as _G followed by their heap address.
func (a Answer) Bindings() []Binding {
	bs := make([]Binding, len(a.Target.Vars))
	for i, x := range a.Target.Vars {
		bs[i] = Binding{
			Name:  x.Name,
			Value: program.FormatValue(a.Context.Heap, a.Context.Symbols, a.Context.Heap[x.Addr]),
		}
	}
	return bs
}

// Lookup returns the dereferenced value of a goal variable.
func (a Answer) Lookup(name string) (program.Cell, bool) {
	for _, x := range a.Target.Vars {
		if x.Name == name {
			return a.Context.DeReference(a.Context.Heap[x.Addr]), true
		}
	}
	return 0, false
}

// String renders the goal with its current bindings.
func (a Answer) String() string {
	return program.FormatTerm(a.Context.Heap, a.Context.Symbols, a.Target.HeadAddr)
}
