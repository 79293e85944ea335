package solver_test

import (
	"testing"
	"time"

	"github.com/logice/logice/engine"
	"github.com/logice/logice/errors"
	"github.com/logice/logice/solver"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSolve(t *testing.T) {
	s := solver.New()
	require.NoError(t, s.Consult(`
		(nat (z))
		(nat ((s (X))) ((nat (X))))`))
	solutions, cancel := s.Query("(nat (X))")
	defer cancel()
	var got [5]string
	for i := 0; i < 5; i++ {
		result := <-solutions
		if result.Err != nil {
			t.Fatalf("#%d: got err: %v", i, result.Err)
		}
		got[i] = result.Solution.String()
	}
	want := [5]string{
		"X = z",
		"X = (s (z))",
		"X = (s ((s (z))))",
		"X = (s ((s ((s (z))))))",
		"X = (s ((s ((s ((s (z))))))))",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func drain(solutions <-chan solver.Result) ([]solver.Solution, error) {
	var got []solver.Solution
	for result := range solutions {
		if result.Err != nil {
			return got, result.Err
		}
		got = append(got, result.Solution)
	}
	return got, nil
}

func TestSolve_CyclicBinding(t *testing.T) {
	s := solver.New()
	require.NoError(t, s.Consult("(eq (Z Z))"))
	for _, goal := range []string{"(eq (X (f (X))))", "(eq ((f (X)) X))"} {
		solutions, cancel := s.Query(goal)
		got, err := drain(solutions)
		cancel()
		if err != nil {
			t.Fatalf("%s: got err: %v", goal, err)
		}
		var texts []string
		for _, solution := range got {
			texts = append(texts, solution.String())
		}
		if diff := cmp.Diff([]string{"X = (f (...))"}, texts); diff != "" {
			t.Errorf("%s: (-want, +got)\n%s", goal, diff)
		}
	}
}

func TestSolve_All(t *testing.T) {
	s := solver.New()
	require.NoError(t, s.Consult("(add (z S S))"))
	require.NoError(t, s.Consult("(add ((s (A)) B (s (S))) ((add (A B S))))"))
	solutions, cancel := s.Query("(add (X Y (s ((s ((s (z))))))))")
	defer cancel()
	got, err := drain(solutions)
	require.NoError(t, err)
	want := []solver.Solution{
		{{Name: "X", Value: "z"}, {Name: "Y", Value: "(s ((s ((s (z))))))"}},
		{{Name: "X", Value: "(s (z))"}, {Name: "Y", Value: "(s ((s (z))))"}},
		{{Name: "X", Value: "(s ((s (z))))"}, {Name: "Y", Value: "(s (z))"}},
		{{Name: "X", Value: "(s ((s ((s (z))))))"}, {Name: "Y", Value: "z"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestSolve_True(t *testing.T) {
	s := solver.New()
	require.NoError(t, s.Consult("(a) (a)"))
	solutions, cancel := s.Query("(a)")
	defer cancel()
	got, err := drain(solutions)
	require.NoError(t, err)
	require.Len(t, got, 2)
	if got[0].String() != "true" {
		t.Errorf("got %q, want true", got[0])
	}
}

func TestSolve_Cancel(t *testing.T) {
	s := solver.New()
	require.NoError(t, s.Consult("(loop () ((loop)))"))
	solutions, cancel := s.Query("(loop)")
	<-time.After(10 * time.Millisecond)
	cancel()
	got, err := drain(solutions)
	if len(got) != 0 || err != nil {
		t.Errorf("got %v, %v after cancel; want no results", got, err)
	}
}

func TestSolve_CancelWithoutDraining(t *testing.T) {
	s := solver.New()
	require.NoError(t, s.Consult("(nat (z)) (nat ((s (X))) ((nat (X))))"))
	solutions, cancel := s.Query("(nat (X))")
	<-solutions
	cancel()
	// goleak checks that the search goroutine exits.
}

func TestSolve_StepLimit(t *testing.T) {
	s := solver.New(engine.WithMaxSteps(50))
	require.NoError(t, s.Consult("(loop () ((loop)))"))
	solutions, cancel := s.Query("(loop)")
	defer cancel()
	_, err := drain(solutions)
	if !errors.Is(err, &engine.Error{Code: engine.StepLimit}) {
		t.Errorf("got err %v, want StepLimit", err)
	}
}

func TestSolve_NoProgram(t *testing.T) {
	s := solver.New()
	solutions, cancel := s.Query("(a)")
	defer cancel()
	_, err := drain(solutions)
	if !errors.Is(err, &engine.Error{Code: engine.NoProgram}) {
		t.Errorf("got err %v, want NoProgram", err)
	}
}

func TestConsult_KeepsProgramOnError(t *testing.T) {
	s := solver.New()
	require.NoError(t, s.Consult("(a (b))"))
	prog := s.Program()

	err := s.Consult("(c (d)) X")
	if !errors.Is(err, &engine.Error{Code: engine.CompileFailed}) {
		t.Errorf("got err %v, want CompileFailed", err)
	}
	err = s.Consult(`(c "d`)
	if !errors.Is(err, &engine.Error{Code: engine.ParseFailed}) {
		t.Errorf("got err %v, want ParseFailed", err)
	}
	if s.Program() != prog {
		t.Errorf("program changed after failed consults")
	}

	solutions, cancel := s.Query("(c (X))")
	defer cancel()
	got, err := drain(solutions)
	require.NoError(t, err)
	if len(got) != 0 {
		t.Errorf("got %v, want no solutions for clauses of failed consult", got)
	}
}

func TestSolution_Get(t *testing.T) {
	sol := solver.Solution{{Name: "X", Value: "a"}, {Name: "Y", Value: "(f (b))"}}
	if v, ok := sol.Get("Y"); !ok || v != "(f (b))" {
		t.Errorf("Get(Y) = %q, %t", v, ok)
	}
	if _, ok := sol.Get("Z"); ok {
		t.Errorf("Get(Z) found a value")
	}
	if got, want := sol.String(), "X = a, Y = (f (b))"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
