package test_helpers_test

import (
	"testing"

	"github.com/logice/logice/test_helpers"
)

func TestDedent(t *testing.T) {
	got := test_helpers.Dedent(`
		Cells:
		  [0]
		Symbols:
	`)
	want := "Cells:\n  [0]\nSymbols:"
	if got != want {
		t.Errorf("Dedent() = %q, want %q", got, want)
	}
}
