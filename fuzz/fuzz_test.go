package fuzz

import (
	"testing"

	"github.com/logice/logice/engine"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func FuzzLoad(f *testing.F) {
	seeds := []string{
		"(a) (b)",
		"(a (b c d)) (add ((s (X)) Y (s (Z))) ((add (X Y Z))))",
		"(eq (Z Z))",
		`("is a" ("Socrates" man))`,
		"(loop () ((loop)))",
		"(f (d)) (f (c)) (a ((e (X)) d) ((f (X))))",
		"A",
		"(a",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		Fuzz(data)
	})
}

func TestFuzz(t *testing.T) {
	tests := []struct {
		data string
		want int
	}{
		{"(a) (b (X))", 1},
		{"(p (X Y) ((p (Y X))))", 1},
		{"A", 0},
		{`(a "b`, 0},
	}
	for _, test := range tests {
		if got := Fuzz([]byte(test.data)); got != test.want {
			t.Errorf("Fuzz(%q) = %d, want %d", test.data, got, test.want)
		}
	}
}

func TestHeadGoals(t *testing.T) {
	prog, err := engine.New().Load(`(a) (eq (Z Z)) (p ((s (X)) "Y") ((a)))`)
	require.NoError(t, err)
	want := []string{"(a)", "(eq (G4 G4))", `(p ((s (G12)) "Y"))`}
	if diff := cmp.Diff(want, headGoals(prog)); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}
