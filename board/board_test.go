package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/tetrabot/piece"
)

func TestFromCellsMalformed(t *testing.T) {
	is := is.New(t)
	_, err := FromCells([]int32{0, 0, 0}, 2, 2)
	is.True(errors.Is(err, ErrMalformedGrid))
	_, err = FromCells(nil, 0, 0)
	is.True(errors.Is(err, ErrMalformedGrid))
	_, err = FromRows([]string{"...", ".."})
	is.True(errors.Is(err, ErrMalformedGrid))
}

func TestFromCellsCopies(t *testing.T) {
	is := is.New(t)
	buf := []int32{0, 0, 0, 0}
	g, err := FromCells(buf, 2, 2)
	is.NoErr(err)
	buf[0] = 7
	is.True(!g.Occupied(0, 0))
}

func TestRowsRoundTrip(t *testing.T) {
	is := is.New(t)
	g := Overhang.Grid()
	is.Equal(g.Width(), 6)
	is.Equal(g.Height(), 5)
	is.Equal(g.Rows()[1], ".#....")
	is.True(MustFromRows(g.Rows()...).Equals(g))
}

func TestCanPlace(t *testing.T) {
	is := is.New(t)
	g := SingleGap.Grid()
	dot := piece.MustNew([]int32{1}, 1, 1)
	bar := piece.MustNew([]int32{1, 1}, 2, 1)
	// padded shape: only the bottom-left cell is filled.
	padded := piece.MustNew([]int32{0, 0, 1, 0}, 2, 2)

	is.True(CanPlace(g, dot, 2, 3))   // the gap
	is.True(!CanPlace(g, dot, 1, 3))  // over a filled cell
	is.True(!CanPlace(g, dot, 4, 0))  // off the right edge
	is.True(!CanPlace(g, dot, -1, 0)) // off the left edge
	is.True(!CanPlace(g, dot, 0, 4))  // below the floor
	is.True(!CanPlace(g, bar, 3, 0))  // half off the right edge
	is.True(!CanPlace(g, bar, 1, 3))
	is.True(CanPlace(g, padded, 3, 1))  // empty column hangs off the right
	is.True(!CanPlace(g, padded, 0, 3)) // filled cell below the floor
}

func TestCanPlaceSoundness(t *testing.T) {
	g := Jagged.Grid()
	shapes := []string{"I", "O", "T", "S", "Z", "J", "L"}
	for _, name := range shapes {
		s, err := piece.ByName(name)
		assert.NoError(t, err)
		for rot := 0; rot < 4; rot++ {
			r := piece.Rotate(s, rot)
			for y := -1; y <= g.Height(); y++ {
				for x := -1; x <= g.Width(); x++ {
					want := true
					for py := 0; py < r.Height(); py++ {
						for px := 0; px < r.Width(); px++ {
							if !r.Occupied(px, py) {
								continue
							}
							col, row := x+px, y+py
							if col < 0 || row < 0 || col >= g.Width() || row >= g.Height() ||
								g.Occupied(col, row) {
								want = false
							}
						}
					}
					assert.Equal(t, want, CanPlace(g, r, x, y), "%s rot %d at %d,%d", name, rot, x, y)
				}
			}
		}
	}
}

func TestLandingRowEmptyBoard(t *testing.T) {
	is := is.New(t)
	g, err := New(10, 20)
	is.NoErr(err)
	shapes := []piece.Shape{
		piece.MustNew([]int32{1}, 1, 1),
		piece.MustNew([]int32{1, 1, 1, 1}, 4, 1),
		piece.MustNew([]int32{1, 1, 1, 1}, 1, 4),
		piece.MustNew([]int32{0, 1, 0, 1, 1, 1}, 3, 2),
		piece.MustNew([]int32{1, 1, 1, 1}, 2, 2),
	}
	for _, s := range shapes {
		for x := 0; x <= g.MaxOffset(s.Width()); x++ {
			row, ok := LandingRow(g, s, x)
			is.True(ok)
			is.Equal(row, g.Height()-s.Height())
		}
	}
}

func TestLandingRowObstacles(t *testing.T) {
	is := is.New(t)
	g := Jagged.Grid()
	dot := piece.MustNew([]int32{1}, 1, 1)
	row, ok := LandingRow(g, dot, 3)
	is.True(ok)
	is.Equal(row, 5)
	row, ok = LandingRow(g, dot, 0)
	is.True(ok)
	is.Equal(row, 1)

	// padding rows under the filled cells do not stop the drop.
	flat, _ := piece.ByName("I")
	row, ok = LandingRow(g, flat, 2)
	is.True(ok)
	is.Equal(row, 2) // the filled row of the I sits on row 3
}

func TestLandingRowBlockedAtSpawn(t *testing.T) {
	is := is.New(t)
	g := ToppedOut.Grid()
	dot := piece.MustNew([]int32{1}, 1, 1)
	for x := 0; x < g.Width(); x++ {
		_, ok := LandingRow(g, dot, x)
		is.True(!ok)
	}
}

func TestStamp(t *testing.T) {
	is := is.New(t)
	g := SingleGap.Grid()
	dot := piece.MustNew([]int32{5}, 1, 1)
	out := Stamp(g, dot, 2, 3)
	is.Equal(out.Rows()[3], "####")
	is.Equal(g.Rows()[3], "##.#") // original untouched

	// out-of-bounds cells are dropped silently.
	bar := piece.MustNew([]int32{1, 1, 1}, 3, 1)
	out = Stamp(g, bar, 2, 0)
	is.Equal(out.Rows()[0], "..##")
}

func TestClearLines(t *testing.T) {
	is := is.New(t)
	g := MustFromRows(
		"#...",
		"####",
		".#..",
		"####",
		"##.#",
	)
	out, n := ClearLines(g)
	is.Equal(n, 2)
	is.Equal(out.Rows(), []string{
		"....",
		"....",
		"#...",
		".#..",
		"##.#",
	})
	is.Equal(g.Rows()[1], "####")

	none, n := ClearLines(SingleGap.Grid())
	is.Equal(n, 0)
	is.True(none.Equals(SingleGap.Grid()))
}
