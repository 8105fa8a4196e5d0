// Package movegen enumerates every placement of a piece on a board. Each
// of the four rotations is tried at every horizontal offset that keeps
// the bounding box on the board, dropped under gravity, and scored.
package movegen

import (
	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/equity"
	"github.com/domino14/tetrabot/move"
	"github.com/domino14/tetrabot/piece"
)

// Candidate is a scored placement along with the rotated shape it was
// made with, so callers can stamp it without rotating again.
type Candidate struct {
	move.Placement
	Shape piece.Shape
}

// Generator walks placements in a fixed order (rotation ascending, then
// x ascending) and hands each legal one to its recorder. A Generator is
// not safe for concurrent use; make one per goroutine.
type Generator struct {
	calc     equity.Calculator
	recorder PlacementRecorderFunc

	placements []Candidate
	best       Candidate
	considered int
}

func NewGenerator(calc equity.Calculator) *Generator {
	return &Generator{
		calc:     calc,
		recorder: TopPlacementRecorder,
		best:     Candidate{Placement: move.NoPlacement()},
	}
}

// SetPlacementRecorder replaces the default recorder, which only keeps
// the best placement.
func (gen *Generator) SetPlacementRecorder(r PlacementRecorderFunc) {
	gen.recorder = r
}

func (gen *Generator) reset() {
	gen.placements = gen.placements[:0]
	gen.best = Candidate{Placement: move.NoPlacement()}
	gen.considered = 0
}

// Generate enumerates every placement of s on g. Offsets whose bounding
// box would cross the right edge are never tried; offsets where the piece
// cannot enter at row 0 are skipped.
func (gen *Generator) Generate(g board.Grid, s piece.Shape) {
	gen.reset()
	for rot, shape := range piece.Orientations(s) {
		for x := 0; x <= g.MaxOffset(shape.Width()); x++ {
			gen.considered++
			y, ok := board.LandingRow(g, shape, x)
			if !ok {
				continue
			}
			gen.recorder(gen, Candidate{
				Placement: move.Placement{
					X:        x,
					Y:        y,
					Rotation: rot,
					Score:    gen.calc.Evaluate(g, shape, x, y),
				},
				Shape: shape,
			})
		}
	}
}

// Placements returns what the recorder collected in enumeration order.
func (gen *Generator) Placements() []Candidate {
	return gen.placements
}

// Best is the highest scoring placement seen by the last Generate, or a
// NoPlacement candidate if nothing was legal.
func (gen *Generator) Best() Candidate {
	return gen.best
}

// Considered is the number of (rotation, offset) pairs tried.
func (gen *Generator) Considered() int {
	return gen.considered
}

// BestPlacement is a one-shot single-ply search.
func BestPlacement(calc equity.Calculator, g board.Grid, s piece.Shape) move.Placement {
	gen := NewGenerator(calc)
	gen.Generate(g, s)
	return gen.Best().Placement
}

// GenerateAll returns every legal placement of s on g in enumeration
// order.
func GenerateAll(calc equity.Calculator, g board.Grid, s piece.Shape) []Candidate {
	gen := NewGenerator(calc)
	gen.SetPlacementRecorder(AllPlacementsRecorder)
	gen.Generate(g, s)
	return gen.Placements()
}
