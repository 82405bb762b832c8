package tetris

import (
	"iter"
	"slices"
)

// Cell is a board coordinate. X grows to the right, Y grows upward and row 0
// is the floor.
type Cell struct {
	X, Y int
}

// Add returns c translated by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Board is a fixed size grid of occupied cells.
// Cells are stored row-major starting at the floor, so shifting every row
// above a cleared row is a single copy.
type Board struct {
	width  int
	height int
	cells  []bool
}

// NewBoard creates an empty board. Both dimensions must be positive.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic("tetris: board dimensions must be positive")
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// InBounds reports whether c is horizontally inside the board and not above
// the top row. Rows below the floor are in bounds: they are handled by
// IsBlocked.
func (b *Board) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < b.width && c.Y <= b.height-1
}

// IsBlocked reports whether a piece cell may not occupy c: either c lies
// below the floor or the board cell at c is occupied.
func (b *Board) IsBlocked(c Cell) bool {
	if c.Y < 0 {
		return true
	}
	return b.IsOccupied(c)
}

// IsOccupied reports whether the board cell at c is filled. Cells outside
// the grid are never occupied.
func (b *Board) IsOccupied(c Cell) bool {
	i, ok := b.index(c)
	return ok && b.cells[i]
}

func (b *Board) index(c Cell) (int, bool) {
	if c.X < 0 || c.X >= b.width || c.Y < 0 || c.Y >= b.height {
		return 0, false
	}
	return c.Y*b.width + c.X, true
}

// Lock marks every cell as occupied. If any cell lies outside the grid
// nothing is written and Lock returns false.
func (b *Board) Lock(cells []Cell) bool {
	for _, c := range cells {
		if _, ok := b.index(c); !ok {
			return false
		}
	}
	for _, c := range cells {
		i, _ := b.index(c)
		b.cells[i] = true
	}
	return true
}

// RowFull reports whether every column of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, filled := range b.row(y) {
		if !filled {
			return false
		}
	}
	return true
}

func (b *Board) row(y int) []bool {
	return b.cells[y*b.width : (y+1)*b.width]
}

// FullRows returns the indices of all full rows, bottom to top.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < b.height; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows empties each given row and shifts everything above it down by
// one. Duplicate and out of range rows are ignored. Rows are processed
// highest first so earlier shifts never move a pending row. Returns the
// number of rows cleared.
func (b *Board) ClearRows(rows []int) int {
	sorted := slices.DeleteFunc(slices.Clone(rows), func(y int) bool {
		return y < 0 || y >= b.height
	})
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	slices.Reverse(sorted)

	top := (b.height - 1) * b.width
	for _, y := range sorted {
		copy(b.cells[y*b.width:top], b.cells[(y+1)*b.width:])
		clear(b.cells[top:])
	}
	return len(sorted)
}

// Clear empties the whole board.
func (b *Board) Clear() {
	clear(b.cells)
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for _, filled := range b.cells {
		if filled {
			n++
		}
	}
	return n
}

// OccupiedCells iterates over every occupied cell, row by row from the floor.
func (b *Board) OccupiedCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, filled := range b.cells {
			if !filled {
				continue
			}
			if !yield(Cell{X: i % b.width, Y: i / b.width}) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		width:  b.width,
		height: b.height,
		cells:  append([]bool(nil), b.cells...),
	}
}
