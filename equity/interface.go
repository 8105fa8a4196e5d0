package equity

import (
	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/piece"
)

// Calculator scores a placement. Higher is better; scores are only
// comparable within a single search.
type Calculator interface {
	// Evaluate stamps s onto a copy of g at (x, y) and scores the result.
	Evaluate(g board.Grid, s piece.Shape, x, y int) float64
	// EvaluateFeatures scores an already-extracted feature vector.
	EvaluateFeatures(f board.Features) float64
	Type() string
}
