package lookahead

import (
	"github.com/cespare/xxhash"

	"github.com/domino14/tetrabot/board"
)

// futureMemo remembers follow-up scores for boards already searched
// within one call. Symmetric pieces (O, and S/Z/I turned twice) often
// land several beam entries on the same board.
type futureMemo struct {
	entries map[uint64][]memoEntry
	buf     []byte
	hits    int
}

type memoEntry struct {
	grid   board.Grid
	future float64
}

func newFutureMemo(size int) *futureMemo {
	return &futureMemo{entries: make(map[uint64][]memoEntry, size)}
}

func (m *futureMemo) key(g board.Grid) uint64 {
	cells := g.Cells()
	if cap(m.buf) < len(cells) {
		m.buf = make([]byte, len(cells))
	}
	m.buf = m.buf[:len(cells)]
	for i, c := range cells {
		if c != 0 {
			m.buf[i] = 1
		} else {
			m.buf[i] = 0
		}
	}
	return xxhash.Sum64(m.buf)
}

func (m *futureMemo) lookup(g board.Grid) (float64, bool) {
	for _, e := range m.entries[m.key(g)] {
		if e.grid.Equals(g) {
			m.hits++
			return e.future, true
		}
	}
	return 0, false
}

func (m *futureMemo) store(g board.Grid, future float64) {
	k := m.key(g)
	m.entries[k] = append(m.entries[k], memoEntry{grid: g, future: future})
}
