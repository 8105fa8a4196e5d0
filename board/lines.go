package board

// rowFull reports whether every cell of a row is occupied.
func (g Grid) rowFull(row int) bool {
	if row < 0 || row >= g.height {
		return false
	}
	base := row * g.width
	for c := 0; c < g.width; c++ {
		if g.cells[base+c] == 0 {
			return false
		}
	}
	return true
}

// CompletedLines counts the rows in which every cell is occupied.
func CompletedLines(g Grid) int {
	n := 0
	for r := 0; r < g.height; r++ {
		if g.rowFull(r) {
			n++
		}
	}
	return n
}

// ClearLines returns a copy of g with every full row removed. The
// remaining rows keep their order and settle at the bottom; empty rows
// are inserted at the top so the grid keeps its size.
func ClearLines(g Grid) (Grid, int) {
	out := Grid{width: g.width, height: g.height, cells: make([]int32, len(g.cells))}
	dest := g.height - 1
	cleared := 0
	for r := g.height - 1; r >= 0; r-- {
		if g.rowFull(r) {
			cleared++
			continue
		}
		copy(out.cells[dest*g.width:(dest+1)*g.width], g.cells[r*g.width:(r+1)*g.width])
		dest--
	}
	return out, cleared
}
