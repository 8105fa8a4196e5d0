package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/equity"
	"github.com/domino14/tetrabot/move"
	"github.com/domino14/tetrabot/piece"
)

func defaultCalc(t testing.TB) equity.Calculator {
	lc, err := equity.NewLinearCalculator(equity.DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}
	return lc
}

func TestSingleCellOnEmptyBoard(t *testing.T) {
	is := is.New(t)
	g, err := board.New(4, 4)
	is.NoErr(err)
	best := BestPlacement(defaultCalc(t), g, piece.MustNew([]int32{1}, 1, 1))
	is.Equal(best.X, 0)
	is.Equal(best.Y, 3)
	is.Equal(best.Rotation, 0)
	is.True(!best.IsNone())
}

func TestFillsTheGap(t *testing.T) {
	is := is.New(t)
	g := board.SingleGap.Grid()
	dot := piece.MustNew([]int32{1}, 1, 1)
	best := BestPlacement(defaultCalc(t), g, dot)
	is.Equal(best.X, 2)
	is.Equal(best.Y, 3)
	f := board.Extract(board.Stamp(g, dot, best.X, best.Y))
	is.Equal(f.CompletedLines, 1)
}

func TestVerticalBarClearsFour(t *testing.T) {
	is := is.New(t)
	g := board.TetrisReady.Grid()
	bar := piece.MustNew([]int32{1, 1, 1, 1}, 4, 1)
	gen := NewGenerator(defaultCalc(t))
	gen.Generate(g, bar)
	best := gen.Best()
	is.Equal(best.Rotation, 1) // rotation 3 ties and comes later
	is.Equal(best.X, 9)
	is.Equal(best.Y, 4)
	is.Equal(best.Shape.Width(), 1)
	is.Equal(board.CompletedLines(board.Stamp(g, best.Shape, best.X, best.Y)), 4)
}

func TestNoLegalPlacement(t *testing.T) {
	is := is.New(t)
	calc := defaultCalc(t)
	g := board.ToppedOut.Grid()
	tee, err := piece.ByName("T")
	is.NoErr(err)
	best := BestPlacement(calc, g, tee)
	is.True(best.IsNone())
	is.Equal(best, move.NoPlacement())
	is.Equal(len(GenerateAll(calc, g, tee)), 0)

	// wider than the board in every orientation
	narrow, err := board.New(2, 6)
	is.NoErr(err)
	wide := piece.MustNew([]int32{1, 1, 1, 0, 0, 0, 1, 1, 1}, 3, 3)
	is.True(BestPlacement(calc, narrow, wide).IsNone())
}

func TestGenerateAllOrder(t *testing.T) {
	is := is.New(t)
	g, err := board.New(10, 20)
	is.NoErr(err)
	tee, err := piece.ByName("T")
	is.NoErr(err)

	gen := NewGenerator(defaultCalc(t))
	gen.SetPlacementRecorder(AllPlacementsRecorder)
	gen.Generate(g, tee)
	is.Equal(gen.Considered(), 4*8)
	all := gen.Placements()
	is.Equal(len(all), 4*8)
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		is.True(prev.Rotation < cur.Rotation || (prev.Rotation == cur.Rotation && prev.X < cur.X))
	}
	// the tracked best is the first maximum
	best := gen.Best()
	for _, c := range all {
		is.True(c.Score <= best.Score)
		if c.Score == best.Score {
			is.Equal(c.Placement, best.Placement)
			break
		}
	}
}

func TestGenerateReusesGenerator(t *testing.T) {
	is := is.New(t)
	calc := defaultCalc(t)
	gen := NewGenerator(calc)
	gen.Generate(board.ToppedOut.Grid(), piece.MustNew([]int32{1}, 1, 1))
	is.True(gen.Best().IsNone())
	gen.Generate(board.SingleGap.Grid(), piece.MustNew([]int32{1}, 1, 1))
	is.Equal(gen.Best().X, 2)
}

func BenchmarkGenerateT(b *testing.B) {
	calc := defaultCalc(b)
	g := board.Jagged.Grid()
	tee, _ := piece.ByName("T")
	gen := NewGenerator(calc)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Generate(g, tee)
	}
}
