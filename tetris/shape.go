package tetris

import "fmt"

// Shape identifies one of the seven tetrominoes.
type Shape int

const (
	ShapeO Shape = iota
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
	ShapeI
	numShapes
)

// Shapes lists the whole catalogue in declaration order.
var Shapes = [numShapes]Shape{ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL, ShapeI}

var shapeNames = [numShapes]string{"O", "T", "S", "Z", "J", "L", "I"}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Valid reports whether s is part of the catalogue.
func (s Shape) Valid() bool {
	return s >= 0 && s < numShapes
}

// Rotations is the number of distinct orientations tracked per shape.
const Rotations = 4

// Offset is a cell position relative to a piece anchor. DY is zero or
// negative: matrix rows extend downward from the anchor.
type Offset struct {
	DX, DY int
}

// base matrices, top row first
var shapeMatrices = [numShapes][][]bool{
	ShapeO: {
		{true, true},
		{true, true},
	},
	ShapeT: {
		{false, true, false},
		{true, true, true},
	},
	ShapeS: {
		{false, true, true},
		{true, true, false},
	},
	ShapeZ: {
		{true, true, false},
		{false, true, true},
	},
	ShapeJ: {
		{true, false, false},
		{true, true, true},
	},
	ShapeL: {
		{false, false, true},
		{true, true, true},
	},
	ShapeI: {
		{true, true, true, true},
	},
}

var rotationTable [numShapes][Rotations][]Offset

func init() {
	for _, shape := range Shapes {
		m := shapeMatrices[shape]
		for r := range Rotations {
			rotationTable[shape][r] = matrixOffsets(m)
			m = rotateMatrix(m)
		}
	}
}

// rotateMatrix returns m turned 90 degrees clockwise. A rows x cols matrix
// becomes cols x rows.
func rotateMatrix(m [][]bool) [][]bool {
	rows := len(m)
	if rows == 0 {
		return nil
	}
	cols := len(m[0])

	rotated := make([][]bool, cols)
	for j := range rotated {
		rotated[j] = make([]bool, rows)
	}

	for i := range rows {
		for j := range cols {
			rotated[j][rows-1-i] = m[i][j]
		}
	}

	return rotated
}

func matrixOffsets(m [][]bool) []Offset {
	var offsets []Offset
	for row := range m {
		for col, filled := range m[row] {
			if filled {
				offsets = append(offsets, Offset{DX: col, DY: -row})
			}
		}
	}
	return offsets
}

// Offsets returns the occupied cells of s at the given rotation, relative
// to the anchor. The returned slice must not be modified.
func (s Shape) Offsets(rotation int) []Offset {
	return rotationTable[s][normalizeRotation(rotation)]
}

// Matrix returns a copy of the occupancy matrix of s at the given rotation,
// top row first.
func (s Shape) Matrix(rotation int) [][]bool {
	m := shapeMatrices[s]
	for range normalizeRotation(rotation) {
		m = rotateMatrix(m)
	}
	out := make([][]bool, len(m))
	for i := range m {
		out[i] = append([]bool(nil), m[i]...)
	}
	return out
}

func normalizeRotation(rotation int) int {
	return ((rotation % Rotations) + Rotations) % Rotations
}
