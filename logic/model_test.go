package logic_test

import (
	"testing"

	"github.com/logice/logice/dsl"
	"github.com/logice/logice/logic"
)

var (
	ident = dsl.Ident
	var_  = dsl.Var
	lit   = dsl.Lit
	tuple = dsl.Tuple
)

func TestAtomString(t *testing.T) {
	tests := []struct {
		atom logic.Atom
		want string
	}{
		{ident("a"), "a"},
		{var_("X"), "X"},
		{lit("hello world"), `"hello world"`},
		{lit("a\"b\\c\n"), `"a\"b\\c\n"`},
		{tuple(), "()"},
		{tuple(ident("a")), "(a)"},
		{tuple(ident("add"), tuple(var_("X"), ident("b"), tuple(ident("s"), tuple(var_("Z"))))),
			"(add (X b (s (Z))))"},
	}
	for _, test := range tests {
		if got := test.atom.String(); got != test.want {
			t.Errorf("%#v.String() = %q, want %q", test.atom, got, test.want)
		}
	}
}

func TestFormatSymbol(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a", "a"},
		{"add-1", "add-1"},
		{"_x", "_x"},
		{"X", `"X"`},
		{"", `""`},
		{"a b", `"a b"`},
		{"f(x)", `"f(x)"`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, test := range tests {
		if got := logic.FormatSymbol(test.name); got != test.want {
			t.Errorf("FormatSymbol(%q) = %s, want %s", test.name, got, test.want)
		}
	}
}

func TestSymbolName(t *testing.T) {
	if name, ok := logic.SymbolName(lit("Abc")); !ok || name != "Abc" {
		t.Errorf("SymbolName(literal) = %q, %t", name, ok)
	}
	if _, ok := logic.SymbolName(var_("Abc")); ok {
		t.Errorf("SymbolName(variable): expected false")
	}
	if _, ok := logic.SymbolName(tuple()); ok {
		t.Errorf("SymbolName(tuple): expected false")
	}
}
