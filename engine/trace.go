package engine

import (
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/logice/logice/program"

	"go.uber.org/zap"
)

// EventKind is a point in the search where the tracer is notified.
type EventKind int

const (
	// StartEvent is sent before the first step of a query.
	StartEvent EventKind = iota
	// CallEvent is sent when a goal starts being resolved.
	CallEvent
	// TryEvent is sent after a candidate clause is copied to the heap.
	TryEvent
	// FailEvent is sent when a clause head doesn't unify with the goal.
	FailEvent
	// ExitEvent is sent when a clause head unifies with the goal.
	ExitEvent
	// RedoEvent is sent when backtracking into a goal for another clause.
	RedoEvent
	// AnswerEvent is sent for every answer.
	AnswerEvent
	// DoneEvent is sent when the search ends.
	DoneEvent
)

var eventKindNames = [...]string{
	StartEvent:  "start",
	CallEvent:   "call",
	TryEvent:    "try",
	FailEvent:   "fail",
	ExitEvent:   "exit",
	RedoEvent:   "redo",
	AnswerEvent: "answer",
	DoneEvent:   "done",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event describes a search step.
type Event struct {
	QueryID string
	Kind    EventKind
	// Step is the number of clause heads tried so far.
	Step int
	// Depth is the number of pending goals with choice points.
	Depth int
	// Goal is the heap address of the goal term.
	Goal int
	// Key is the goal's functor indicator, for call events.
	Key string
	// Clause is the candidate program clause.
	Clause *program.Clause
	// Err is the reason for a failed unification, or for an interrupted search.
	Err error
}

// Tracer receives search events and heap snapshots. A Tracer shared by
// concurrent queries must be safe for concurrent use.
type Tracer interface {
	Step(ev Event)
	Dump(prog *program.Program, ctx *QueryContext)
}

// NopTracer ignores everything.
type NopTracer struct{}

func (NopTracer) Step(Event)                           {}
func (NopTracer) Dump(*program.Program, *QueryContext) {}

// LogTracer writes events to a logger at debug level.
type LogTracer struct {
	logger *zap.Logger
}

func NewLogTracer(logger *zap.Logger) *LogTracer {
	return &LogTracer{logger: logger.Named("trace")}
}

func (t *LogTracer) Step(ev Event) {
	ce := t.logger.Check(zap.DebugLevel, ev.Kind.String())
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.String("query", ev.QueryID),
		zap.Int("step", ev.Step),
		zap.Int("depth", ev.Depth),
		zap.Int("goal", ev.Goal),
	}
	if ev.Key != "" {
		fields = append(fields, zap.String("key", ev.Key))
	}
	if ev.Clause != nil {
		fields = append(fields, zap.Stringer("clause", ev.Clause))
	}
	if ev.Err != nil {
		fields = append(fields, zap.Error(ev.Err))
	}
	ce.Write(fields...)
}

func (t *LogTracer) Dump(prog *program.Program, ctx *QueryContext) {
	ce := t.logger.Check(zap.DebugLevel, "heap")
	if ce == nil {
		return
	}
	var b strings.Builder
	if err := ctx.Dump(&b); err != nil {
		ce.Write(zap.Error(err))
		return
	}
	ce.Write(zap.Int("size", ctx.HeapSize()), zap.String("dump", b.String()))
}

// JSONTracer writes events and heap snapshots as JSON lines. The program is
// written once, before the first snapshot that refers to it.
type JSONTracer struct {
	mu       sync.Mutex
	enc      *json.Encoder
	lastProg *program.Program
	err      error
}

func NewJSONTracer(w io.Writer) *JSONTracer {
	return &JSONTracer{enc: json.NewEncoder(w)}
}

func (t *JSONTracer) Step(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.encode(ev)
}

func (t *JSONTracer) Dump(prog *program.Program, ctx *QueryContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prog != t.lastProg {
		t.lastProg = prog
		t.encode(map[string]interface{}{"Program": prog})
	}
	t.encode(map[string]interface{}{"Context": ctx})
}

func (t *JSONTracer) encode(v interface{}) {
	if t.err != nil {
		return
	}
	t.err = t.enc.Encode(v)
}

// Err returns the first error writing to the output.
func (t *JSONTracer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
