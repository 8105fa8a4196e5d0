// Package equity holds the board evaluators the move generator ranks
// placements with.
package equity

import (
	"fmt"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/piece"
)

// Weights are the coefficients of the linear evaluator. Every weight is a
// magnitude: Lines is rewarded and the rest are penalised.
type Weights struct {
	Lines           float64 `yaml:"lines"`
	Holes           float64 `yaml:"holes"`
	Bumpiness       float64 `yaml:"bumpiness"`
	AggregateHeight float64 `yaml:"aggregate_height"`
	MaxHeight       float64 `yaml:"max_height"`
	Wells           float64 `yaml:"wells"`
}

// DefaultWeights were hand tuned against self-play.
func DefaultWeights() Weights {
	return Weights{
		Lines:           3.6,
		Holes:           0.8,
		Bumpiness:       0.36,
		AggregateHeight: 0.51,
		MaxHeight:       0.62,
		Wells:           0.11,
	}
}

// Validate rejects negative weights, which would flip the meaning of a
// feature.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"lines":            w.Lines,
		"holes":            w.Holes,
		"bumpiness":        w.Bumpiness,
		"aggregate_height": w.AggregateHeight,
		"max_height":       w.MaxHeight,
		"wells":            w.Wells,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// LinearCalculator scores a board as a weighted sum of its features.
type LinearCalculator struct {
	weights Weights
}

func NewLinearCalculator(w Weights) (*LinearCalculator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &LinearCalculator{weights: w}, nil
}

func (lc *LinearCalculator) Weights() Weights {
	return lc.weights
}

func (lc *LinearCalculator) Evaluate(g board.Grid, s piece.Shape, x, y int) float64 {
	return lc.EvaluateFeatures(board.Extract(board.Stamp(g, s, x, y)))
}

func (lc *LinearCalculator) EvaluateFeatures(f board.Features) float64 {
	w := lc.weights
	return w.Lines*float64(f.CompletedLines) -
		w.Holes*float64(f.Holes) -
		w.Bumpiness*float64(f.Bumpiness) -
		w.AggregateHeight*float64(f.AggregateHeight) -
		w.MaxHeight*float64(f.MaxHeight) -
		w.Wells*float64(f.Wells)
}

func (lc *LinearCalculator) Type() string {
	return "LinearCalculator"
}
