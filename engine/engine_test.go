package engine_test

import (
	"context"
	"testing"

	"github.com/logice/logice/engine"
	"github.com/logice/logice/errors"
	"github.com/logice/logice/parser"
	"github.com/logice/logice/program"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// result is a snapshot of an answer, that stays valid after the cursor advances.
type result struct {
	HeadAddr  int
	NeckAddr  int
	GoalAddrs []int
	Xs        []program.Cell
	Bindings  []engine.Binding
	Text      string
}

func load(t *testing.T, e *engine.Engine, text string) *program.Program {
	t.Helper()
	prog, err := e.Load(text)
	require.NoError(t, err, "load %q", text)
	return prog
}

func query(t *testing.T, e *engine.Engine, prog *program.Program, goal string) []result {
	t.Helper()
	answers, err := e.Query(context.Background(), prog, engine.Query{Goal: goal})
	require.NoError(t, err, "query %q", goal)
	defer answers.Close()
	var results []result
	for answers.Next() {
		a := answers.Answer()
		results = append(results, result{
			HeadAddr:  a.Clause.HeadAddr,
			NeckAddr:  a.Clause.NeckAddr,
			GoalAddrs: a.Clause.GoalAddrs,
			Xs:        a.Clause.Xs,
			Bindings:  a.Bindings(),
			Text:      a.String(),
		})
	}
	require.NoError(t, answers.Err())
	return results
}

func cells(vs ...int) []program.Cell {
	cs := make([]program.Cell, len(vs))
	for i, v := range vs {
		cs[i] = program.Cell(v)
	}
	return cs
}

func TestQuery_Clauses(t *testing.T) {
	tests := []struct {
		desc  string
		text  string
		query string
		want  []result
	}{
		{
			desc:  "fact",
			text:  "(a) (b)",
			query: "(a)",
			want: []result{
				{HeadAddr: 0, NeckAddr: 2, Xs: cells(3), Bindings: []engine.Binding{}, Text: "(a)"},
			},
		},
		{
			desc:  "second fact",
			text:  "(a) (b)",
			query: "(b)",
			want: []result{
				{HeadAddr: 2, NeckAddr: 4, Xs: cells(11), Bindings: []engine.Binding{}, Text: "(b)"},
			},
		},
		{
			desc:  "undefined predicate",
			text:  "(a) (b)",
			query: "(c)",
			want:  nil,
		},
		{
			desc:  "fact with variable",
			text:  "(a (b))",
			query: "(a (X))",
			want: []result{
				{HeadAddr: 0, NeckAddr: 3, Xs: cells(3, 11),
					Bindings: []engine.Binding{{"X", "b"}}, Text: "(a (b))"},
			},
		},
		{
			desc:  "variable bound to tuple",
			text:  "(a ((b (A)) c))",
			query: "(a (X c))",
			want: []result{
				{HeadAddr: 0, NeckAddr: 7, Xs: cells(3, 34, 19),
					Bindings: []engine.Binding{{"X", "(b (_G10))"}}, Text: "(a ((b (_G10)) c))"},
			},
		},
		{
			desc:  "variable within tuple",
			text:  "(a ((b (c)) d))",
			query: "(a ((b (X)) d))",
			want: []result{
				{HeadAddr: 0, NeckAddr: 7, Xs: cells(3, 34, 27),
					Bindings: []engine.Binding{{"X", "c"}}, Text: "(a ((b (c)) d))"},
			},
		},
		{
			desc:  "multiple clauses",
			text:  "(a ((e (c)) d)) (a ((b (c)) d)) (a ((b (e)) d))",
			query: "(a ((b (X)) d))",
			want: []result{
				{HeadAddr: 7, NeckAddr: 14, Xs: cells(3, 90, 27),
					Bindings: []engine.Binding{{"X", "c"}}, Text: "(a ((b (c)) d))"},
				{HeadAddr: 14, NeckAddr: 21, Xs: cells(3, 146, 27),
					Bindings: []engine.Binding{{"X", "e"}}, Text: "(a ((b (e)) d))"},
			},
		},
		{
			desc:  "rule",
			text:  "(f (c)) (a ((e (X)) d) ((f (X))))",
			query: "(a ((e (c)) d))",
			want: []result{
				{HeadAddr: 3, NeckAddr: 10, GoalAddrs: []int{10}, Xs: cells(19, 58, 35),
					Bindings: []engine.Binding{}, Text: "(a ((e (c)) d))"},
			},
		},
		{
			desc:  "rule with failing subgoal",
			text:  "(f (d)) (a ((e (X)) d) ((f (X))))",
			query: "(a ((e (c)) d))",
			want:  nil,
		},
		{
			desc:  "rule with many solutions",
			text:  "(f (d)) (f (c)) (a ((e (X)) d) ((f (X))))",
			query: "(a ((e (X)) d))",
			want: []result{
				{HeadAddr: 6, NeckAddr: 13, GoalAddrs: []int{13}, Xs: cells(27, 82, 11),
					Bindings: []engine.Binding{{"X", "d"}}, Text: "(a ((e (d)) d))"},
				{HeadAddr: 6, NeckAddr: 13, GoalAddrs: []int{13}, Xs: cells(27, 82, 11),
					Bindings: []engine.Binding{{"X", "c"}}, Text: "(a ((e (c)) d))"},
			},
		},
		{
			desc:  "literal symbols",
			text:  `("is a" ("Socrates" man))`,
			query: `("is a" (Who man))`,
			want: []result{
				{HeadAddr: 0, NeckAddr: 4, Xs: cells(3, 11, 19),
					Bindings: []engine.Binding{{"Who", `"Socrates"`}}, Text: `("is a" ("Socrates" man))`},
			},
		},
	}
	for _, indexing := range []bool{true, false} {
		e := engine.New(engine.WithIndexing(indexing))
		for _, test := range tests {
			t.Run(test.desc, func(t *testing.T) {
				prog := load(t, e, test.text)
				got := query(t, e, prog, test.query)
				if diff := cmp.Diff(test.want, got); diff != "" {
					t.Errorf("indexing=%t: (-want, +got)\n%s", indexing, diff)
				}
			})
		}
	}
}

func TestQuery_VariableValue(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(a (b))")
	answers, err := e.Query(context.Background(), prog, engine.Query{Goal: "(a (X))"})
	require.NoError(t, err)
	defer answers.Close()
	require.True(t, answers.Next())
	got, ok := answers.Answer().Lookup("X")
	require.True(t, ok)
	if want := program.Attach(program.Symbol, 1); got != want {
		t.Errorf("X = %v, want %v", got, want)
	}
	if _, ok := answers.Answer().Lookup("Y"); ok {
		t.Errorf("Lookup(Y) found a binding for a variable not in the goal")
	}
	if answers.Next() {
		t.Errorf("got more than one answer")
	}
}

func bindings(results []result) [][]engine.Binding {
	var bs [][]engine.Binding
	for _, r := range results {
		bs = append(bs, r.Bindings)
	}
	return bs
}

func TestQuery_Order(t *testing.T) {
	e := engine.New()
	prog := load(t, e, `
		(p (1)) (p (2))
		(q (a)) (q (b))
		(pq (X Y) ((p (X)) (q (Y))))`)
	got := bindings(query(t, e, prog, "(pq (X Y))"))
	want := [][]engine.Binding{
		{{"X", "1"}, {"Y", "a"}},
		{{"X", "1"}, {"Y", "b"}},
		{{"X", "2"}, {"Y", "a"}},
		{{"X", "2"}, {"Y", "b"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestQuery_Recursion(t *testing.T) {
	e := engine.New()
	prog := load(t, e, `
		(add (z Y Y))
		(add ((s (X)) Y (s (Z))) ((add (X Y Z))))`)
	got := bindings(query(t, e, prog, "(add (X Y (s ((s (z))))))"))
	want := [][]engine.Binding{
		{{"X", "z"}, {"Y", "(s ((s (z))))"}},
		{{"X", "(s (z))"}, {"Y", "(s (z))"}},
		{{"X", "(s ((s (z))))"}, {"Y", "z"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestQuery_SharedVariables(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(eq (X X)) (pair ((p (A B))) ((eq (A B))))")
	tests := []struct {
		query string
		want  [][]engine.Binding
	}{
		{"(eq (a a))", [][]engine.Binding{{}}},
		{"(eq (a b))", nil},
		{"(eq (X b))", [][]engine.Binding{{{"X", "b"}}}},
		{"(eq (X Y))", [][]engine.Binding{{{"X", "_G2"}, {"Y", "_G2"}}}},
		{"(pair ((p (c Z))))", [][]engine.Binding{{{"Z", "c"}}}},
	}
	for _, test := range tests {
		got := bindings(query(t, e, prog, test.query))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: (-want, +got)\n%s", test.query, diff)
		}
	}
}

func TestQuery_NoLeakage(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(f (d)) (f (c)) (a ((e (X)) d) ((f (X))))")
	first := query(t, e, prog, "(a ((e (X)) d))")
	second := query(t, e, prog, "(a ((e (X)) d))")
	require.Len(t, first, 2)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("(-first, +second)\n%s", diff)
	}
}

func TestQuery_RestoresHeap(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(f (d)) (f (c)) (a ((e (X)) d) ((f (X))))")
	before := append([]program.Cell(nil), prog.Cells...)
	answers, err := e.Query(context.Background(), prog, engine.Query{Goal: "(a ((e (X)) d))"})
	require.NoError(t, err)
	n := 0
	for answers.Next() {
		n++
		// The goal is at the bottom of the heap, followed by the clauses in use.
		ctx := answers.Answer().Context
		require.Greater(t, ctx.HeapSize(), answers.Target().Len)
	}
	require.NoError(t, answers.Err())
	require.Equal(t, 2, n)
	ctx := answers.Context()
	if ctx.HeapSize() != 0 || len(ctx.Frames) != 0 {
		t.Errorf("got heap size %d and %d frames after the last answer, want empty", ctx.HeapSize(), len(ctx.Frames))
	}
	if diff := cmp.Diff(before, prog.Cells); diff != "" {
		t.Errorf("program cells changed (-before, +after)\n%s", diff)
	}
}

func TestQuery_Close(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(f (d)) (f (c))")
	answers, err := e.Query(context.Background(), prog, engine.Query{Goal: "(f (X))"})
	require.NoError(t, err)
	require.True(t, answers.Next())
	answers.Close()
	if answers.Next() {
		t.Errorf("Next() = true after Close")
	}
	require.NoError(t, answers.Err())
	if n := answers.Context().HeapSize(); n != 0 {
		t.Errorf("heap size = %d after Close, want 0", n)
	}
}

func TestQuery_NewSymbols(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(a (b))")
	got := query(t, e, prog, "(a (zzz))")
	if len(got) != 0 {
		t.Errorf("got %d answers, want 0", len(got))
	}
	got = query(t, e, prog, "(zzz (b))")
	if len(got) != 0 {
		t.Errorf("got %d answers, want 0", len(got))
	}
	if diff := cmp.Diff([]string{"a", "b"}, prog.Symbols); diff != "" {
		t.Errorf("program symbols changed (-want, +got)\n%s", diff)
	}
}

func TestQuery_Errors(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(a)")
	tests := []struct {
		prog  *program.Program
		query string
		want  engine.ErrorCode
	}{
		{nil, "(a)", engine.NoProgram},
		{prog, "", engine.EmptyQuery},
		{prog, "  \n ", engine.EmptyQuery},
		{prog, "(a) (b)", engine.TooManyQuery},
		{prog, "a", engine.InvalidQuery},
		{prog, "X", engine.InvalidQuery},
		{prog, `"a"`, engine.InvalidQuery},
		{prog, "()", engine.InvalidQuery},
		{prog, "(a b c)", engine.InvalidQuery},
		{prog, "(a", engine.ParseFailed},
		{prog, "(a))", engine.ParseFailed},
		{prog, "(X)", engine.CompileFailed},
		{prog, "((a))", engine.CompileFailed},
		{prog, "(a ((b c d)))", engine.CompileFailed},
	}
	for _, test := range tests {
		answers, err := e.Query(context.Background(), test.prog, engine.Query{Goal: test.query})
		if answers != nil {
			t.Errorf("%q: got answers, want nil", test.query)
		}
		var qerr *engine.Error
		if !errors.As(err, &qerr) {
			t.Errorf("%q: got err %v, want *engine.Error", test.query, err)
			continue
		}
		if qerr.Code != test.want {
			t.Errorf("%q: got code %v, want %v", test.query, qerr.Code, test.want)
		}
		if !errors.Is(err, &engine.Error{Code: test.want}) {
			t.Errorf("%q: errors.Is(%v, %v) = false", test.query, err, test.want)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	e := engine.New()

	_, err := e.Load("A")
	var cerr *program.Error
	require.ErrorAs(t, err, &cerr)
	if cerr.Code != program.VariableAsClause || cerr.Atom.String() != "A" {
		t.Errorf("got %v, want VariableAsClause at A", cerr)
	}
	require.True(t, errors.Is(err, &engine.Error{Code: engine.CompileFailed}))

	_, err = e.Load(`(a "b\x")`)
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	if perr.Code != parser.LiteralContainsInvalidEscapeLetter {
		t.Errorf("got %v, want LiteralContainsInvalidEscapeLetter", perr)
	}
	require.True(t, errors.Is(err, &engine.Error{Code: engine.ParseFailed}))
}

func TestLoad_Deterministic(t *testing.T) {
	e := engine.New()
	text := "(f (d)) (f (c)) (a ((e (X)) d) ((f (X)))) (b)"
	if diff := cmp.Diff(load(t, e, text), load(t, e, text)); diff != "" {
		t.Errorf("(-first, +second)\n%s", diff)
	}
}

func TestQuery_MaxSteps(t *testing.T) {
	e := engine.New(engine.WithMaxSteps(100))
	prog := load(t, e, "(loop () ((loop)))")
	answers, err := e.Query(context.Background(), prog, engine.Query{Goal: "(loop)"})
	require.NoError(t, err)
	if answers.Next() {
		t.Fatalf("got an answer for an infinite loop")
	}
	err = answers.Err()
	if !errors.Is(err, &engine.Error{Code: engine.StepLimit}) {
		t.Errorf("got err %v, want StepLimit", err)
	}
	if got := answers.Steps(); got != 101 {
		t.Errorf("steps = %d, want 101", got)
	}
	if n := answers.Context().HeapSize(); n != 0 {
		t.Errorf("heap size = %d after interruption, want 0", n)
	}
}

func TestQuery_Cancel(t *testing.T) {
	e := engine.New()
	prog := load(t, e, "(nat (z)) (nat ((s (X))) ((nat (X))))")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	answers, err := e.Query(ctx, prog, engine.Query{Goal: "(nat (X))"})
	require.NoError(t, err)

	var got []string
	for i := 0; i < 3 && answers.Next(); i++ {
		got = append(got, answers.Answer().Bindings()[0].Value)
	}
	want := []string{"z", "(s (z))", "(s ((s (z))))"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
	cancel()
	if answers.Next() {
		t.Errorf("got an answer after cancel")
	}
	err = answers.Err()
	if !errors.Is(err, &engine.Error{Code: engine.Canceled}) || !errors.Is(err, context.Canceled) {
		t.Errorf("got err %v, want Canceled", err)
	}
}

func TestQuery_IndexingSkipsClauses(t *testing.T) {
	text := "(f (a)) (f (b)) (f (c)) (f (d)) (f ((g (X))))"
	count := func(indexing bool) int {
		e := engine.New(engine.WithIndexing(indexing))
		prog := load(t, e, text)
		answers, err := e.Query(context.Background(), prog, engine.Query{Goal: "(f (d))"})
		require.NoError(t, err)
		for answers.Next() {
		}
		require.NoError(t, answers.Err())
		return answers.Steps()
	}
	if got := count(true); got != 1 {
		t.Errorf("with indexing, steps = %d, want 1", got)
	}
	if got := count(false); got != 5 {
		t.Errorf("without indexing, steps = %d, want 5", got)
	}
}

func TestQuery_IndexingEquivalence(t *testing.T) {
	text := `
		(color (red)) (color (green)) (color (blue))
		(edge (a b)) (edge (b c)) (edge (c a)) (edge (a (x (y))))
		(path (X Y) ((edge (X Y))))
		(path (X Z) ((edge (X Y)) (edge (Y Z))))
		(paint ((n (X C))) ((color (C)) (edge (X b))))`
	queries := []string{
		"(color (C))",
		"(color (red))",
		"(edge (a X))",
		"(edge (X a))",
		"(edge (a (x Y)))",
		"(path (a Z))",
		"(path (X X))",
		"(paint (P))",
		"(paint ((n (c C))))",
	}
	on, off := engine.New(engine.WithIndexing(true)), engine.New(engine.WithIndexing(false))
	progOn, progOff := load(t, on, text), load(t, off, text)
	for _, q := range queries {
		want := query(t, off, progOff, q)
		got := query(t, on, progOn, q)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: (-without indexing, +with indexing)\n%s", q, diff)
		}
	}
}
