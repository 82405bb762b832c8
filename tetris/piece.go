package tetris

// Piece is a shape placed on the board. Anchor is the board cell of the
// top-left corner of the shape's matrix at its current rotation.
type Piece struct {
	Shape    Shape
	Rotation int
	Anchor   Cell
}

// Cells returns the absolute board cells covered by the piece.
func (p Piece) Cells() []Cell {
	return p.cellsAt(p.Rotation, 0, 0)
}

func (p Piece) cellsAt(rotation, dx, dy int) []Cell {
	offsets := p.Shape.Offsets(rotation)
	cells := make([]Cell, len(offsets))
	for i, o := range offsets {
		cells[i] = Cell{X: p.Anchor.X + o.DX + dx, Y: p.Anchor.Y + o.DY + dy}
	}
	return cells
}

// Moved returns the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Anchor = p.Anchor.Add(dx, dy)
	return p
}

// Rotated returns the piece turned clockwise once about its anchor.
func (p Piece) Rotated() Piece {
	p.Rotation = normalizeRotation(p.Rotation + 1)
	return p
}

// fits reports whether every cell of p is in bounds and unblocked on b.
func (p Piece) fits(b *Board) bool {
	for _, c := range p.Cells() {
		if !b.InBounds(c) || b.IsBlocked(c) {
			return false
		}
	}
	return true
}
