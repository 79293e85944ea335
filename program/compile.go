package program

import (
	"github.com/logice/logice/logic"
)

// Compile translates a sequence of clauses into a new Program.
//
// The program's symbol table starts with seed, so that a query may be compiled
// against the symbols of an existing program: symbols already present keep
// their index, and new ones are appended.
//
// Any malformed clause aborts compilation, and no program is returned.
func Compile(atoms []logic.Atom, seed []string) (*Program, error) {
	p := New(seed)
	for _, atom := range atoms {
		if err := p.compileClause(atom); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Program) compileClause(atom logic.Atom) error {
	switch a := atom.(type) {
	case logic.Identifier:
		return compileError(IdentifierAsClause, a)
	case logic.Variable:
		return compileError(VariableAsClause, a)
	case logic.Literal:
		return compileError(LiteralAsClause, a)
	case *logic.Tuple:
		switch n := a.Len(); {
		case n == 0:
			return nil
		case n <= 3:
			return p.compileTupleClause(a)
		default:
			return compileError(WrongClauseFormat, a)
		}
	}
	panic("unreachable")
}

// compiler holds the state of a single clause compilation.
type compiler struct {
	p *Program
	// Address of the Declare cell of each variable seen so far.
	variables map[string]int
	vars      []VarAddr
}

func (p *Program) compileTupleClause(t *logic.Tuple) error {
	c := &compiler{p: p, variables: make(map[string]int)}
	baseAddr := len(p.Cells)
	head := &logic.Tuple{Atoms: t.Atoms[:min(2, t.Len())], Offset: t.Offset}
	functor, arity, err := c.compileGoal(head)
	if err != nil {
		return err
	}
	neckAddr := len(p.Cells)
	var goalAddrs []int
	if t.Len() == 3 {
		goals, ok := t.Atoms[2].(*logic.Tuple)
		if !ok {
			return compileError(SubGoalsIsNotTuple, t.Atoms[2])
		}
		for _, goal := range goals.Atoms {
			g, ok := goal.(*logic.Tuple)
			if !ok {
				return compileError(SubGoalIsNotTuple, goal)
			}
			goalAddrs = append(goalAddrs, len(p.Cells))
			if _, _, err := c.compileGoal(g); err != nil {
				return err
			}
		}
	}
	n := min(MaxArgIndex, arity+1)
	xs := make([]Cell, n)
	for i := 0; i < n; i++ {
		xs[i] = p.Deref(p.Cells[baseAddr+1+i])
	}
	key := Key(functor, arity)
	p.AddClause(key, &Clause{
		Key:       key,
		BaseAddr:  baseAddr,
		Len:       len(p.Cells) - baseAddr,
		HeadAddr:  baseAddr,
		NeckAddr:  neckAddr,
		GoalAddrs: goalAddrs,
		Xs:        xs,
		Vars:      c.vars,
	})
	return nil
}

// compileGoal appends the cells of a `(functor args?)` tuple, returning the
// functor name and arity.
func (c *compiler) compileGoal(t *logic.Tuple) (string, int, error) {
	if n := t.Len(); n < 1 || n > 2 {
		return "", 0, compileError(WrongGoalFormat, t)
	}
	functor, err := functorName(t.Atoms[0])
	if err != nil {
		return "", 0, err
	}
	var args []logic.Atom
	if t.Len() == 2 {
		switch a := t.Atoms[1].(type) {
		case *logic.Tuple:
			args = a.Atoms
		default:
			args = []logic.Atom{a}
		}
	}
	p := c.p
	arity := len(args)
	p.AddCells(Attach(Arity, arity), Attach(Symbol, p.AddSymbol(functor)))
	argAddr := len(p.Cells)
	p.AddCells(make([]Cell, arity)...)
	for i, arg := range args {
		if err := c.compileArg(argAddr+i, arg); err != nil {
			return "", 0, err
		}
	}
	return functor, arity, nil
}

func (c *compiler) compileArg(addr int, arg logic.Atom) error {
	p := c.p
	switch a := arg.(type) {
	case logic.Identifier:
		p.Cells[addr] = Attach(Symbol, p.AddSymbol(a.Value))
	case logic.Literal:
		p.Cells[addr] = Attach(Symbol, p.AddSymbol(a.Value))
	case logic.Variable:
		if declAddr, ok := c.variables[a.Value]; ok {
			p.Cells[addr] = Attach(Use, declAddr)
			return nil
		}
		c.variables[a.Value] = addr
		c.vars = append(c.vars, VarAddr{a.Value, addr})
		p.Cells[addr] = Attach(Declare, addr)
	case *logic.Tuple:
		p.Cells[addr] = Attach(Reference, len(p.Cells))
		if _, _, err := c.compileGoal(a); err != nil {
			return err
		}
	}
	return nil
}

func functorName(atom logic.Atom) (string, error) {
	if name, ok := logic.SymbolName(atom); ok {
		return name, nil
	}
	switch a := atom.(type) {
	case logic.Variable:
		return "", compileError(VariableAsFunctor, a)
	case *logic.Tuple:
		return "", compileError(TupleAsFunctor, a)
	}
	panic("unreachable")
}
