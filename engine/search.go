package engine

import (
	"context"

	"github.com/logice/logice/errors"
	"github.com/logice/logice/program"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// goalList is a linked list of goal addresses still to be resolved. Lists
// are shared between choice points, and never modified.
type goalList struct {
	addr int
	next *goalList
}

func pushGoals(addrs []int, rest *goalList) *goalList {
	for i := len(addrs) - 1; i >= 0; i-- {
		rest = &goalList{addrs[i], rest}
	}
	return rest
}

// choicePoint holds the alternatives for resolving a goal. While a candidate
// is matched, its frame is on top of the frames of older choice points.
type choicePoint struct {
	goal  int
	cands []*program.Clause
	next  int
	// Program clause currently matched.
	clause *program.Clause
	// Goals to resolve after this one.
	rest *goalList
}

// Answers is a cursor over the answers of a query. Each call to Next resumes
// the search from the last answer.
//
//	answers, err := e.Query(ctx, prog, engine.Query{Goal: "(add (X Y (s (z))))"})
//	if err != nil {
//		return err
//	}
//	defer answers.Close()
//	for answers.Next() {
//		fmt.Println(answers.Answer().Bindings())
//	}
//	return answers.Err()
type Answers struct {
	id     string
	ctx    context.Context
	engine *Engine
	qctx   *QueryContext
	target *program.Clause

	stack   []*choicePoint
	started bool
	done    bool
	steps   int
	count   int
	answer  Answer
	err     error
}

func newAnswers(ctx context.Context, e *Engine, qctx *QueryContext, target *program.Clause) *Answers {
	return &Answers{
		id:     uuid.NewString(),
		ctx:    ctx,
		engine: e,
		qctx:   qctx,
		target: target,
	}
}

// ID identifies the query in tracer events and logs.
func (a *Answers) ID() string {
	return a.id
}

// Context returns the query's heap.
func (a *Answers) Context() *QueryContext {
	return a.qctx
}

// Target returns the goal descriptor, with heap addresses.
func (a *Answers) Target() *program.Clause {
	return a.target
}

// Steps returns the number of clause heads tried so far.
func (a *Answers) Steps() int {
	return a.steps
}

// Next searches for the next answer, returning false when there are no more
// answers or the search was interrupted. Check Err in the latter case.
func (a *Answers) Next() bool {
	if a.done {
		return false
	}
	var goals *goalList
	var ok bool
	var err error
	if !a.started {
		a.started = true
		a.qctx.PushFrame(&Frame{SourceAddr: a.target.BaseAddr, TargetAddr: a.qctx.HeapSize()})
		a.trace(Event{Kind: StartEvent, Goal: a.target.HeadAddr})
		a.engine.tracer.Dump(a.qctx.Program, a.qctx)
		goals, ok = pushGoals([]int{a.target.HeadAddr}, nil), true
	}
	for {
		if ok {
			if goals == nil {
				a.count++
				a.answer = Answer{Context: a.qctx, Clause: a.stack[0].clause, Target: a.target}
				a.trace(Event{Kind: AnswerEvent, Goal: a.target.HeadAddr, Clause: a.answer.Clause})
				a.engine.tracer.Dump(a.qctx.Program, a.qctx)
				return true
			}
			cp := a.call(goals.addr, goals.next)
			goals, ok, err = a.tryNext(cp)
		} else {
			if len(a.stack) == 0 {
				a.finish(nil)
				return false
			}
			// Undo the current alternative of the newest choice point.
			cp := a.stack[len(a.stack)-1]
			a.qctx.PopFrame(false)
			a.trace(Event{Kind: RedoEvent, Goal: cp.goal, Clause: cp.clause})
			goals, ok, err = a.tryNext(cp)
		}
		if err != nil {
			a.finish(err)
			return false
		}
	}
}

// Answer returns the answer found by the last call to Next.
func (a *Answers) Answer() Answer {
	return a.answer
}

// Err returns the error that interrupted the search, if any.
func (a *Answers) Err() error {
	return a.err
}

// Close abandons the search, restoring the heap.
func (a *Answers) Close() {
	if !a.done {
		a.finish(nil)
	}
}

func (a *Answers) call(goal int, rest *goalList) *choicePoint {
	key := a.goalKey(goal)
	cp := &choicePoint{
		goal:  goal,
		cands: a.qctx.Program.Clauses[key],
		rest:  rest,
	}
	a.stack = append(a.stack, cp)
	a.trace(Event{Kind: CallEvent, Goal: goal, Key: key})
	return cp
}

func (a *Answers) goalKey(addr int) string {
	heap := a.qctx.Heap
	functor := a.qctx.Symbols[program.Detach(heap[addr+1])]
	return program.Key(functor, program.Detach(heap[addr]))
}

// tryNext unifies the goal of cp with its remaining candidates, in order. On
// the first match it returns the goals left to resolve. If there's no match,
// cp is removed from the stack.
func (a *Answers) tryNext(cp *choicePoint) (*goalList, bool, error) {
	prog := a.qctx.Program
	for cp.next < len(cp.cands) {
		clause := cp.cands[cp.next]
		cp.next++
		if a.engine.indexing && !a.qctx.mayMatch(cp.goal, clause) {
			continue
		}
		if err := a.step(); err != nil {
			return nil, false, err
		}
		a.qctx.PushFrame(&Frame{SourceAddr: cp.goal, TargetAddr: a.qctx.HeapSize()})
		relocated := a.qctx.CopyToHeap(prog.Cells, clause)
		a.trace(Event{Kind: TryEvent, Goal: cp.goal, Clause: clause})
		if err := a.qctx.unifyTerm(relocated.HeadAddr, cp.goal); err != nil {
			a.trace(Event{Kind: FailEvent, Goal: cp.goal, Clause: clause, Err: err})
			a.qctx.PopFrame(false)
			continue
		}
		cp.clause = clause
		a.trace(Event{Kind: ExitEvent, Goal: cp.goal, Clause: clause})
		return pushGoals(relocated.GoalAddrs, cp.rest), true, nil
	}
	a.stack = a.stack[:len(a.stack)-1]
	return nil, false, nil
}

func (a *Answers) step() error {
	a.steps++
	if limit := a.engine.maxSteps; limit > 0 && a.steps > limit {
		return &Error{Code: StepLimit, Err: errors.New("exceeded %d steps", limit)}
	}
	if err := a.ctx.Err(); err != nil {
		return &Error{Code: Canceled, Err: err}
	}
	return nil
}

// finish unwinds every frame, leaving the heap empty.
func (a *Answers) finish(err error) {
	for len(a.qctx.Frames) > 1 {
		a.qctx.PopFrame(false)
	}
	a.qctx.PopFrame(true)
	a.stack = nil
	a.done = true
	a.err = err
	a.answer = Answer{}
	a.trace(Event{Kind: DoneEvent, Err: err})
	fields := []zap.Field{
		zap.String("id", a.id),
		zap.Int("answers", a.count),
		zap.Int("steps", a.steps),
	}
	if err != nil {
		a.engine.logger.Debug("query interrupted", append(fields, zap.Error(err))...)
		return
	}
	a.engine.logger.Debug("query finished", fields...)
}

func (a *Answers) trace(ev Event) {
	ev.QueryID = a.id
	ev.Step = a.steps
	ev.Depth = len(a.stack)
	a.engine.tracer.Step(ev)
}
