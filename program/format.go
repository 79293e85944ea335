package program

import (
	"fmt"
	"io"
	"strings"

	"github.com/logice/logice/logic"
)

// FormatCell describes a cell, resolving symbols against the symbol table.
func FormatCell(cell Cell, symbols []string) string {
	tag, v := Extract(cell), Detach(cell)
	if tag == Symbol && v < len(symbols) {
		return fmt.Sprintf("%v %s", tag, logic.FormatSymbol(symbols[v]))
	}
	return fmt.Sprintf("%v %d", tag, v)
}

// FormatCells lists cells one per line, as `[addr]:raw = Tag value`.
func FormatCells(cells []Cell, symbols []string) string {
	lines := make([]string, len(cells))
	for i, cell := range cells {
		lines[i] = fmt.Sprintf("[%d]:%d = %s", i, uint64(cell), FormatCell(cell, symbols))
	}
	return strings.Join(lines, "\n")
}

// Dump writes the cells, symbols and clauses of the program.
func (p *Program) Dump(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Cells:\n")
	if len(p.Cells) > 0 {
		b.WriteString(FormatCells(p.Cells, p.Symbols))
		b.WriteString("\n")
	}
	b.WriteString("\nSymbols:\n")
	for i, symbol := range p.Symbols {
		fmt.Fprintf(&b, "[%d]: %s\n", i, symbol)
	}
	b.WriteString("\nClauses:\n")
	for _, key := range p.Keys {
		b.WriteString(key)
		b.WriteString("\n")
		for _, clause := range p.Clauses[key] {
			fmt.Fprintf(&b, "  base=%d len=%d head=%d neck=%d goals=%v xs=%v\n",
				clause.BaseAddr, clause.Len, clause.HeadAddr, clause.NeckAddr, clause.GoalAddrs, clause.Xs)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatClause renders a clause from the cells in p back in source syntax.
func (p *Program) FormatClause(c *Clause) string {
	head := FormatTerm(p.Cells, p.Symbols, c.HeadAddr)
	if c.IsFact() {
		return head
	}
	goals := make([]string, len(c.GoalAddrs))
	for i, addr := range c.GoalAddrs {
		goals[i] = FormatTerm(p.Cells, p.Symbols, addr)
	}
	// Drop the head's closing paren to append the body.
	prefix := head[:len(head)-1]
	if Detach(p.Cells[c.HeadAddr]) == 0 {
		prefix += " ()"
	}
	return fmt.Sprintf("%s (%s))", prefix, strings.Join(goals, " "))
}

// FormatTerm renders the compound term at addr in source syntax. Variables
// are followed through the cells; unbound ones are named after their address.
// A term reached again while rendering itself is printed as `...`.
func FormatTerm(cells []Cell, symbols []string, addr int) string {
	f := newFormatter(cells, symbols, "_G")
	f.term(addr)
	return f.String()
}

// FormatGoal renders the term at addr like FormatTerm, but unbound variables
// are named `G<addr>` so that the text parses back as a goal with variables.
func FormatGoal(cells []Cell, symbols []string, addr int) string {
	f := newFormatter(cells, symbols, "G")
	f.term(addr)
	return f.String()
}

// FormatValue renders a single cell in source syntax.
func FormatValue(cells []Cell, symbols []string, cell Cell) string {
	f := newFormatter(cells, symbols, "_G")
	f.arg(cell)
	return f.String()
}

type formatter struct {
	strings.Builder
	cells     []Cell
	symbols   []string
	varPrefix string
	// Addresses of the terms being rendered.
	open map[int]bool
}

func newFormatter(cells []Cell, symbols []string, varPrefix string) *formatter {
	return &formatter{
		cells:     cells,
		symbols:   symbols,
		varPrefix: varPrefix,
		open:      make(map[int]bool),
	}
}

func (f *formatter) term(addr int) {
	if f.open[addr] {
		f.WriteString("...")
		return
	}
	f.open[addr] = true
	defer delete(f.open, addr)
	arity := Detach(f.cells[addr])
	functor := symbolAt(f.symbols, Detach(f.cells[addr+1]))
	f.WriteByte('(')
	f.WriteString(logic.FormatSymbol(functor))
	if arity > 0 {
		f.WriteString(" (")
		for i := 0; i < arity; i++ {
			if i > 0 {
				f.WriteByte(' ')
			}
			f.arg(f.cells[addr+2+i])
		}
		f.WriteByte(')')
	}
	f.WriteByte(')')
}

func (f *formatter) arg(cell Cell) {
	cell = Deref(f.cells, cell)
	switch Extract(cell) {
	case Declare, Use:
		fmt.Fprintf(f, "%s%d", f.varPrefix, Detach(cell))
	case Reference:
		f.term(Detach(cell))
	case Symbol:
		f.WriteString(logic.FormatSymbol(symbolAt(f.symbols, Detach(cell))))
	case Integer:
		fmt.Fprintf(f, "%d", Detach(cell))
	case Arity:
		fmt.Fprintf(f, "<arity %d>", Detach(cell))
	}
}

func symbolAt(symbols []string, i int) string {
	if i < len(symbols) {
		return symbols[i]
	}
	return fmt.Sprintf("<symbol %d>", i)
}
