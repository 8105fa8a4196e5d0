// Package piece holds falling-piece occupancy bitmaps and the rotation
// logic used by the move generator.
package piece

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedShape = errors.New("malformed piece shape")

// Shape is a row-major occupancy bitmap. A zero cell is empty; anything
// else is occupied. The bitmap is not tied to any orientation.
type Shape struct {
	width  int
	height int
	cells  []int32
}

// New creates a shape from a flat row-major bitmap. The cells are copied.
// A bitmap with no filled cell is malformed.
func New(cells []int32, width, height int) (Shape, error) {
	if width <= 0 || height <= 0 {
		return Shape{}, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedShape, width, height)
	}
	if len(cells) != width*height {
		return Shape{}, fmt.Errorf("%w: %d cells for a %dx%d bitmap",
			ErrMalformedShape, len(cells), width, height)
	}
	filled := false
	for _, v := range cells {
		if v != 0 {
			filled = true
			break
		}
	}
	if !filled {
		return Shape{}, fmt.Errorf("%w: no filled cells", ErrMalformedShape)
	}
	c := make([]int32, len(cells))
	copy(c, cells)
	return Shape{width: width, height: height, cells: c}, nil
}

// MustNew is like New but panics on malformed input. It is meant for
// package-level shape tables and tests.
func MustNew(cells []int32, width, height int) Shape {
	s, err := New(cells, width, height)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Shape) Width() int  { return s.width }
func (s Shape) Height() int { return s.height }

// Cells returns the underlying bitmap. Callers must not modify it.
func (s Shape) Cells() []int32 { return s.cells }

// Occupied reports whether the cell at column x, row y is filled. Out of
// range coordinates are empty.
func (s Shape) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return false
	}
	return s.cells[y*s.width+x] != 0
}

// Equals compares dimensions and occupancy cell by cell.
func (s Shape) Equals(o Shape) bool {
	if s.width != o.width || s.height != o.height || len(s.cells) != len(o.cells) {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rotate returns the shape turned clockwise by turns quarter turns. Each
// turn maps the cell at (x, y) of a w*h bitmap to (h-1-y, x) of an h*w
// bitmap. Negative turns rotate counter-clockwise.
func Rotate(s Shape, turns int) Shape {
	turns = ((turns % 4) + 4) % 4
	c := make([]int32, len(s.cells))
	copy(c, s.cells)
	cur := Shape{width: s.width, height: s.height, cells: c}
	for i := 0; i < turns; i++ {
		w, h := cur.width, cur.height
		rotated := make([]int32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				// new width is h.
				rotated[x*h+(h-1-y)] = cur.cells[y*w+x]
			}
		}
		cur = Shape{width: h, height: w, cells: rotated}
	}
	return cur
}

// Orientations returns the four clockwise rotations of s, each computed
// from the original shape. Index i holds the shape rotated i times.
func Orientations(s Shape) [4]Shape {
	var o [4]Shape
	for r := 0; r < 4; r++ {
		o[r] = Rotate(s, r)
	}
	return o
}

// String draws the bitmap with # for filled cells and . for empty ones.
func (s Shape) String() string {
	var sb strings.Builder
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.cells[y*s.width+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y != s.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
