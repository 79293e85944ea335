// Package program compiles logic clauses into a flat array of tagged cells.
//
// Each cell is a word whose 3 lowest bits are a Tag, and the remaining bits a
// payload: an address, a symbol index, an integer or an arity. A compound term
// `(f (a1 ... an))` is laid out as
//
//	[Arity n][Symbol f][a1]...[an]
//
// where each argument is a Symbol, a variable (Declare or Use), or a Reference
// to another compound term laid out further in the array. Nested terms are
// appended after the argument slots of their parent.
//
// Addresses within a clause are absolute indices into Program.Cells. A clause
// is relocated when copied to a query heap.
package program

import (
	"fmt"
)

// MaxArgIndex is the number of head cells, functor included, kept in a clause's index vector.
const MaxArgIndex = 4

// VarAddr is the address of the Declare cell of a named variable.
type VarAddr struct {
	Name string
	Addr int
}

// Clause describes where a compiled fact or rule lives in a cell array.
type Clause struct {
	// Key is the functor indicator of the head, as in "add/3".
	Key string
	// BaseAddr is the address of the first cell of the clause.
	BaseAddr int
	// Len is the number of cells the clause occupies.
	Len int
	// HeadAddr is the address of the Arity cell of the head.
	HeadAddr int
	// NeckAddr is the first address after the head, where the body starts.
	NeckAddr int
	// GoalAddrs are the addresses of the Arity cells of each subgoal.
	GoalAddrs []int
	// Xs are the dereferenced functor and first arguments of the head, used
	// as an indexing hint.
	Xs []Cell
	// Vars are the clause's variables in order of first occurrence.
	Vars []VarAddr
}

// Relocate returns a copy of the clause with all addresses shifted by offset.
func (c *Clause) Relocate(offset int) *Clause {
	goalAddrs := make([]int, len(c.GoalAddrs))
	for i, addr := range c.GoalAddrs {
		goalAddrs[i] = addr + offset
	}
	var vars []VarAddr
	if c.Vars != nil {
		vars = make([]VarAddr, len(c.Vars))
		for i, x := range c.Vars {
			vars[i] = VarAddr{x.Name, x.Addr + offset}
		}
	}
	return &Clause{
		Key:       c.Key,
		BaseAddr:  c.BaseAddr + offset,
		Len:       c.Len,
		HeadAddr:  c.HeadAddr + offset,
		NeckAddr:  c.NeckAddr + offset,
		GoalAddrs: goalAddrs,
		Xs:        c.Xs,
		Vars:      vars,
	}
}

// IsFact returns whether the clause has no subgoals.
func (c *Clause) IsFact() bool {
	return len(c.GoalAddrs) == 0
}

func (c *Clause) String() string {
	return fmt.Sprintf("%s@%d", c.Key, c.BaseAddr)
}

// Program is a compiled set of clauses. It must not be modified after compilation.
type Program struct {
	Cells   []Cell
	Symbols []string
	// Clauses maps a key to its clauses, in definition order.
	Clauses map[string][]*Clause
	// Keys lists clause keys in order of first definition.
	Keys []string
}

// New returns an empty program whose symbol table starts with a copy of seed.
func New(seed []string) *Program {
	symbols := make([]string, len(seed))
	copy(symbols, seed)
	return &Program{
		Symbols: symbols,
		Clauses: make(map[string][]*Clause),
	}
}

// Size returns the number of cells.
func (p *Program) Size() int {
	return len(p.Cells)
}

// AddClause appends clause to the ones with the same key.
func (p *Program) AddClause(key string, clause *Clause) {
	if _, ok := p.Clauses[key]; !ok {
		p.Keys = append(p.Keys, key)
	}
	p.Clauses[key] = append(p.Clauses[key], clause)
}

// AddSymbol interns a symbol, returning its index.
func (p *Program) AddSymbol(symbol string) int {
	for i, s := range p.Symbols {
		if s == symbol {
			return i
		}
	}
	p.Symbols = append(p.Symbols, symbol)
	return len(p.Symbols) - 1
}

// Symbol returns the symbol at index i, or "" if there's none.
func (p *Program) Symbol(i int) string {
	if i < 0 || i >= len(p.Symbols) {
		return ""
	}
	return p.Symbols[i]
}

// AddCells appends cells to the program.
func (p *Program) AddCells(cells ...Cell) {
	p.Cells = append(p.Cells, cells...)
}

// Deref follows variable cells within the program until an unbound variable
// or a non-variable cell.
func (p *Program) Deref(cell Cell) Cell {
	return Deref(p.Cells, cell)
}

// Deref follows variable cells through cells until an unbound variable, that
// references itself, or a non-variable cell.
func Deref(cells []Cell, cell Cell) Cell {
	for IsVariable(cell) {
		next := cells[Detach(cell)]
		if next == cell {
			break
		}
		cell = next
	}
	return cell
}

// Key returns the clause key for a functor and arity.
func Key(functor string, arity int) string {
	return fmt.Sprintf("%s/%d", functor, arity)
}
