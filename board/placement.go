package board

import (
	"github.com/domino14/tetrabot/piece"
)

// CanPlace reports whether every filled cell of s, anchored with its
// top-left corner at (x, y), lies inside the grid over an empty cell.
// Empty cells of the bitmap may hang outside the grid.
func CanPlace(g Grid, s piece.Shape, x, y int) bool {
	pw, ph := s.Width(), s.Height()
	cells := s.Cells()
	for py := 0; py < ph; py++ {
		for px := 0; px < pw; px++ {
			if cells[py*pw+px] == 0 {
				continue
			}
			col, row := x+px, y+py
			if !g.inBounds(col, row) {
				return false
			}
			if g.cells[row*g.width+col] != 0 {
				return false
			}
		}
	}
	return true
}

// LandingRow drops s from row 0 at column offset x and returns the row its
// bounding box comes to rest at. ok is false when the piece does not fit
// at row 0 at all.
func LandingRow(g Grid, s piece.Shape, x int) (row int, ok bool) {
	if !CanPlace(g, s, x, 0) {
		return 0, false
	}
	// Every occupied cell must stay inside the grid, so the piece cannot
	// descend more than height rows.
	for row < g.height && CanPlace(g, s, x, row+1) {
		row++
	}
	return row, true
}

// Stamp returns a copy of g with the filled cells of s written at (x, y).
// Cells falling outside the grid are skipped.
func Stamp(g Grid, s piece.Shape, x, y int) Grid {
	out := g.Copy()
	pw, ph := s.Width(), s.Height()
	cells := s.Cells()
	for py := 0; py < ph; py++ {
		for px := 0; px < pw; px++ {
			v := cells[py*pw+px]
			if v == 0 {
				continue
			}
			out.Set(x+px, y+py, v)
		}
	}
	return out
}

// MaxOffset is the largest column offset that keeps a bounding box of
// width pw inside the grid. It is negative when the box is wider than the
// grid.
func (g Grid) MaxOffset(pw int) int {
	return g.width - pw
}
