package engine

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/logice/logice/program"
)

// Frame records how to undo one clause attempt.
type Frame struct {
	// SourceAddr is the address of the goal term being resolved.
	SourceAddr int
	// TargetAddr is the heap size before the clause was copied.
	TargetAddr int
	// Trails maps each address bound while this frame was on top to its value
	// before the first binding.
	Trails map[int]program.Cell
}

// QueryContext is the mutable state of a single query: a heap of cells where
// goal and clause copies live, and a stack of frames to undo bindings.
//
// A QueryContext must not be shared between goroutines.
type QueryContext struct {
	Program *program.Program
	// Symbols is the symbol table of the compiled goal, that extends the
	// program's one.
	Symbols []string
	Heap    []program.Cell
	Frames  []*Frame
}

func NewQueryContext(prog *program.Program, symbols []string) *QueryContext {
	return &QueryContext{
		Program: prog,
		Symbols: symbols,
	}
}

// CopyToHeap appends the cells of clause to the heap, relocating addresses, and
// returns the clause descriptor with addresses shifted by the same offset.
func (ctx *QueryContext) CopyToHeap(cells []program.Cell, clause *program.Clause) *program.Clause {
	offset := len(ctx.Heap) - clause.BaseAddr
	for _, cell := range cells[clause.BaseAddr : clause.BaseAddr+clause.Len] {
		ctx.Heap = append(ctx.Heap, program.Relocate(cell, offset))
	}
	return clause.Relocate(offset)
}

func (ctx *QueryContext) PushFrame(frame *Frame) {
	if frame.Trails == nil {
		frame.Trails = make(map[int]program.Cell)
	}
	ctx.Frames = append(ctx.Frames, frame)
}

// TopFrame returns the most recently pushed frame, or nil.
func (ctx *QueryContext) TopFrame() *Frame {
	if len(ctx.Frames) == 0 {
		return nil
	}
	return ctx.Frames[len(ctx.Frames)-1]
}

// PopFrame removes the top frame, restoring every cell in its trail and
// truncating the heap to the frame's TargetAddr. If clearSourceCell is set,
// the heap is truncated further to SourceAddr.
func (ctx *QueryContext) PopFrame(clearSourceCell bool) *Frame {
	frame := ctx.TopFrame()
	if frame == nil {
		return nil
	}
	ctx.Frames = ctx.Frames[:len(ctx.Frames)-1]
	for addr, cell := range frame.Trails {
		ctx.Heap[addr] = cell
	}
	ctx.truncate(frame.TargetAddr)
	if clearSourceCell {
		ctx.truncate(frame.SourceAddr)
	}
	return frame
}

func (ctx *QueryContext) truncate(size int) {
	if size < len(ctx.Heap) {
		ctx.Heap = ctx.Heap[:size]
	}
}

// DeReference follows variable cells until an unbound variable, that
// references itself, or a non-variable cell.
func (ctx *QueryContext) DeReference(cell program.Cell) program.Cell {
	return program.Deref(ctx.Heap, cell)
}

func (ctx *QueryContext) ReadHeapCell(addr int) program.Cell {
	return ctx.Heap[addr]
}

// WriteHeapCell overwrites a heap cell without recording it. Use bind within
// a search.
func (ctx *QueryContext) WriteHeapCell(addr int, cell program.Cell) {
	ctx.Heap[addr] = cell
}

func (ctx *QueryContext) HeapSize() int {
	return len(ctx.Heap)
}

// bind writes cell at addr, after saving the previous value in the top
// frame. Only the first value of an address is kept in a frame.
func (ctx *QueryContext) bind(addr int, cell program.Cell) {
	if frame := ctx.TopFrame(); frame != nil {
		if _, ok := frame.Trails[addr]; !ok {
			frame.Trails[addr] = ctx.Heap[addr]
		}
	}
	ctx.Heap[addr] = cell
}

// Dump writes the heap and the frame stack.
func (ctx *QueryContext) Dump(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Heap:\n")
	if len(ctx.Heap) > 0 {
		b.WriteString(program.FormatCells(ctx.Heap, ctx.Symbols))
		b.WriteString("\n")
	}
	b.WriteString("\nFrames:\n")
	for i, frame := range ctx.Frames {
		fmt.Fprintf(&b, "[%d]: source=%d target=%d trails=%s\n",
			i, frame.SourceAddr, frame.TargetAddr, formatTrails(frame.Trails))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatTrails(trails map[int]program.Cell) string {
	addrs := make([]int, 0, len(trails))
	for addr := range trails {
		addrs = append(addrs, addr)
	}
	sort.Ints(addrs)
	parts := make([]string, len(addrs))
	for i, addr := range addrs {
		parts[i] = fmt.Sprintf("%d:%v", addr, trails[addr])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
