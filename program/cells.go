package program

import (
	"fmt"
)

// Tag is the kind of a cell, stored in its 3 lowest bits.
type Tag uint8

const (
	// Declare is the first occurrence of a variable. Unbound, it holds its own address.
	Declare Tag = iota
	// Use is a later occurrence of a variable, holding the address of its Declare cell.
	Use
	// Reference holds the address of the Arity cell of a nested compound term.
	Reference
	// Symbol holds an index into the program's symbol table.
	Symbol
	// Integer holds a non-negative integer.
	Integer
	// Arity holds the number of arguments of the compound term it starts.
	Arity
)

const (
	tagBits = 3
	tagMask = 1<<tagBits - 1
)

var tagNames = [...]string{
	Declare:   "Declare",
	Use:       "Use",
	Reference: "Reference",
	Symbol:    "Symbol",
	Integer:   "Integer",
	Arity:     "Arity",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Cell is a tagged word: payload<<3 | tag.
type Cell uint64

// Attach builds a cell with tag and payload v, which must be non-negative.
func Attach(tag Tag, v int) Cell {
	return Cell(v)<<tagBits | Cell(tag)
}

// Detach returns the payload of a cell.
func Detach(cell Cell) int {
	return int(cell >> tagBits)
}

// Extract returns the tag of a cell.
func Extract(cell Cell) Tag {
	return Tag(cell & tagMask)
}

// IsVariable returns whether cell is a Declare or Use cell.
func IsVariable(cell Cell) bool {
	tag := Extract(cell)
	return tag == Declare || tag == Use
}

// IsReference returns whether cell is a Reference cell.
func IsReference(cell Cell) bool {
	return Extract(cell) == Reference
}

// IsAddress returns whether the payload of cell is an address, and thus must
// be relocated when the cell is moved.
func IsAddress(cell Cell) bool {
	return IsVariable(cell) || IsReference(cell)
}

// Relocate shifts the address of Declare, Use and Reference cells by offset.
// Other cells are position-independent and returned unchanged.
func Relocate(cell Cell, offset int) Cell {
	if !IsAddress(cell) {
		return cell
	}
	return Attach(Extract(cell), Detach(cell)+offset)
}

func (c Cell) String() string {
	return fmt.Sprintf("[%v:%d]", Extract(c), Detach(c))
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
