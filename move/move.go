// Package move defines the placement values the search produces and the
// result handed back to the host.
package move

import (
	"fmt"
	"math"
)

// Placement is where a piece comes to rest. X and Y anchor the top-left
// corner of the rotated bounding box; Rotation counts clockwise quarter
// turns from the orientation the piece was given in. Scores are only
// comparable within one search.
type Placement struct {
	X        int
	Y        int
	Rotation int
	Score    float64
}

// NoPlacement is the search's starting point. A search that never finds a
// legal drop returns it unchanged.
func NoPlacement() Placement {
	return Placement{Score: math.Inf(-1)}
}

// IsNone reports whether p is the NoPlacement marker.
func (p Placement) IsNone() bool {
	return math.IsInf(p.Score, -1)
}

// ShortDescription is a compact human-readable form.
func (p Placement) ShortDescription() string {
	if p.IsNone() {
		return "(no placement)"
	}
	return fmt.Sprintf("x=%d y=%d r=%d", p.X, p.Y, p.Rotation)
}

func (p Placement) String() string {
	return fmt.Sprintf("<placement %s score: %.3f>", p.ShortDescription(), p.Score)
}

// Result is what the engine returns per decision. Found is false when the
// piece had nowhere to go; the Placement must not be acted on then.
type Result struct {
	Placement
	Found bool
}

// NotFound is the result for a topped-out board.
func NotFound() Result {
	return Result{Placement: NoPlacement()}
}

// ScaledScore is the score as fixed-point hundredths, clamped to the
// int32 range. Negative infinity maps to math.MinInt32.
func ScaledScore(score float64) int32 {
	if math.IsNaN(score) {
		return math.MinInt32
	}
	v := math.Round(score * 100)
	if v <= math.MinInt32 {
		return math.MinInt32
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

// Tuple packs the result as [x, y, rotation, scaled score]. A result
// that was not found packs as [0, 0, 0, math.MinInt32].
func (r Result) Tuple() [4]int32 {
	if !r.Found {
		return [4]int32{0, 0, 0, math.MinInt32}
	}
	return [4]int32{int32(r.X), int32(r.Y), int32(r.Rotation), ScaledScore(r.Score)}
}
