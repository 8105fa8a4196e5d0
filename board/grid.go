// Package board contains the playfield grid, the placement simulator that
// drops pieces under gravity, and the feature extractor the evaluator
// scores boards with.
package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedGrid = errors.New("malformed grid")

const (
	EmptyCell  = '.'
	FilledCell = '#'
)

// Grid is a fixed-width playfield stored as one row-major buffer. Row 0
// is the top row; cell (col, row) lives at row*width+col.
type Grid struct {
	width  int
	height int
	cells  []int32
}

// New returns an empty width x height grid.
func New(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedGrid, width, height)
	}
	return Grid{width: width, height: height, cells: make([]int32, width*height)}, nil
}

// FromCells copies a flat row-major buffer into a new grid. The length of
// cells must be exactly width*height.
func FromCells(cells []int32, width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedGrid, width, height)
	}
	if len(cells) != width*height {
		return Grid{}, fmt.Errorf("%w: %d cells for a %dx%d grid",
			ErrMalformedGrid, len(cells), width, height)
	}
	c := make([]int32, len(cells))
	copy(c, cells)
	return Grid{width: width, height: height, cells: c}, nil
}

// FromRows parses a plaintext board, one string per row, top row first.
// '#' (or any character other than '.', '0' and ' ') marks a filled cell.
// All rows must have the same length.
func FromRows(rows []string) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}
	width := len(rows[0])
	g, err := New(width, len(rows))
	if err != nil {
		return Grid{}, err
	}
	for r, row := range rows {
		if len(row) != width {
			return Grid{}, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrMalformedGrid, r, len(row), width)
		}
		for c := 0; c < width; c++ {
			switch row[c] {
			case EmptyCell, '0', ' ':
			default:
				g.cells[r*width+c] = 1
			}
		}
	}
	return g, nil
}

// MustFromRows is FromRows for literals known to be well formed.
func MustFromRows(rows ...string) Grid {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

func (g Grid) Width() int  { return g.width }
func (g Grid) Height() int { return g.height }

// Cells returns the underlying buffer. Callers must not modify it.
func (g Grid) Cells() []int32 { return g.cells }

// Copy returns a grid that shares no memory with g.
func (g Grid) Copy() Grid {
	c := make([]int32, len(g.cells))
	copy(c, g.cells)
	return Grid{width: g.width, height: g.height, cells: c}
}

func (g Grid) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.width && row < g.height
}

// Occupied reports whether a cell is filled. Cells outside the grid are
// reported as empty; callers that need walls check bounds themselves.
func (g Grid) Occupied(col, row int) bool {
	if !g.inBounds(col, row) {
		return false
	}
	return g.cells[row*g.width+col] != 0
}

// Set writes v into a cell, ignoring coordinates outside the grid.
func (g Grid) Set(col, row int, v int32) {
	if !g.inBounds(col, row) {
		return
	}
	g.cells[row*g.width+col] = v
}

// Equals compares dimensions and occupancy.
func (g Grid) Equals(o Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if (g.cells[i] != 0) != (o.cells[i] != 0) {
			return false
		}
	}
	return true
}

// Rows renders each row as a string of '#' and '.'.
func (g Grid) Rows() []string {
	rows := make([]string, g.height)
	var sb strings.Builder
	for r := 0; r < g.height; r++ {
		sb.Reset()
		for c := 0; c < g.width; c++ {
			if g.cells[r*g.width+c] != 0 {
				sb.WriteByte(FilledCell)
			} else {
				sb.WriteByte(EmptyCell)
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// ToDisplayText draws the grid with walls, a floor and row labels.
func (g Grid) ToDisplayText() string {
	var sb strings.Builder
	for r, row := range g.Rows() {
		fmt.Fprintf(&sb, "%2d|%s|\n", r, row)
	}
	sb.WriteString("  +")
	sb.WriteString(strings.Repeat("-", g.width))
	sb.WriteString("+\n   ")
	for c := 0; c < g.width; c++ {
		sb.WriteString(fmt.Sprintf("%d", c%10))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (g Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
