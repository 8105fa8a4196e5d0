package board

import "fmt"

// Features is the set of board measurements the evaluator weighs. It is
// computed from a single grid snapshot and never stored.
type Features struct {
	AggregateHeight int
	CompletedLines  int
	Holes           int
	Bumpiness       int
	MaxHeight       int
	Wells           int
}

func (f Features) String() string {
	return fmt.Sprintf("<lines: %d holes: %d bump: %d agg: %d max: %d wells: %d>",
		f.CompletedLines, f.Holes, f.Bumpiness, f.AggregateHeight, f.MaxHeight, f.Wells)
}

// ColumnHeights returns, for each column, the distance from the floor to
// the top of its highest occupied cell. Empty columns have height 0.
func ColumnHeights(g Grid) []int {
	heights := make([]int, g.width)
	for c := 0; c < g.width; c++ {
		for r := 0; r < g.height; r++ {
			if g.cells[r*g.width+c] != 0 {
				heights[c] = g.height - r
				break
			}
		}
	}
	return heights
}

func AggregateHeight(heights []int) int {
	sum := 0
	for _, h := range heights {
		sum += h
	}
	return sum
}

func MaxHeight(heights []int) int {
	m := 0
	for _, h := range heights {
		if h > m {
			m = h
		}
	}
	return m
}

// Bumpiness sums the absolute height difference of adjacent columns.
func Bumpiness(heights []int) int {
	sum := 0
	for i := 1; i < len(heights); i++ {
		d := heights[i] - heights[i-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// Holes counts empty cells that have an occupied cell anywhere above them
// in the same column.
func Holes(g Grid) int {
	holes := 0
	for c := 0; c < g.width; c++ {
		covered := false
		for r := 0; r < g.height; r++ {
			if g.cells[r*g.width+c] != 0 {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// walled reports whether a cell is occupied or lies outside the grid.
func (g Grid) walled(col, row int) bool {
	if !g.inBounds(col, row) {
		return true
	}
	return g.cells[row*g.width+col] != 0
}

// Wells adds up, for every empty cell flanked on both sides by an occupied
// cell or a wall, the number of empty cells from it straight down to the
// first occupied cell (or the floor).
func Wells(g Grid) int {
	sum := 0
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if g.cells[r*g.width+c] != 0 {
				continue
			}
			if !g.walled(c-1, r) || !g.walled(c+1, r) {
				continue
			}
			for d := r; d < g.height && g.cells[d*g.width+c] == 0; d++ {
				sum++
			}
		}
	}
	return sum
}

// Extract computes the full feature vector of g.
func Extract(g Grid) Features {
	heights := ColumnHeights(g)
	return Features{
		AggregateHeight: AggregateHeight(heights),
		CompletedLines:  CompletedLines(g),
		Holes:           Holes(g),
		Bumpiness:       Bumpiness(heights),
		MaxHeight:       MaxHeight(heights),
		Wells:           Wells(g),
	}
}
