// Package lookahead re-ranks the best single-ply placements by how well
// the next known piece can follow them.
package lookahead

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/equity"
	"github.com/domino14/tetrabot/move"
	"github.com/domino14/tetrabot/movegen"
	"github.com/domino14/tetrabot/piece"
)

const (
	DefaultBeamWidth = 5
	DefaultDiscount  = 0.75
)

var ErrBadParameters = errors.New("bad beam search parameters")

// BeamEntry is one of the placements that made it into the beam.
type BeamEntry struct {
	movegen.Candidate
	// LinesCleared is the number of rows removed before the follow-up
	// search.
	LinesCleared int
	// Future is the best single-ply score of the next piece, or -Inf if
	// it has nowhere to go.
	Future   float64
	Combined float64
}

// Outcome is the result of a two-ply search.
type Outcome struct {
	Best  move.Placement
	Found bool
	// Legal is the number of legal placements of the current piece.
	Legal int
	Beam  []BeamEntry
}

// BeamSearcher holds the immutable search parameters. It is safe for
// concurrent use.
type BeamSearcher struct {
	calc     equity.Calculator
	width    int
	discount float64
}

func NewBeamSearcher(calc equity.Calculator, width int, discount float64) (*BeamSearcher, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: beam width %d", ErrBadParameters, width)
	}
	if discount < 0 || math.IsNaN(discount) || math.IsInf(discount, 0) {
		return nil, fmt.Errorf("%w: discount %v", ErrBadParameters, discount)
	}
	return &BeamSearcher{calc: calc, width: width, discount: discount}, nil
}

func (bs *BeamSearcher) Width() int        { return bs.width }
func (bs *BeamSearcher) Discount() float64 { return bs.discount }

// Search scores every placement of cur, keeps the best Width of them,
// and for each one clears completed rows and finds the best placement of
// next. The winner maximises immediate + discount*future. The returned
// placement is the one for cur, before any rows are cleared.
//
// If every beam entry leaves next with nowhere to go, the best immediate
// placement is returned with its immediate score.
func (bs *BeamSearcher) Search(g board.Grid, cur, next piece.Shape) Outcome {
	cands := movegen.GenerateAll(bs.calc, g, cur)
	out := Outcome{Best: move.NoPlacement(), Legal: len(cands)}
	if len(cands) == 0 {
		return out
	}
	// Stable, so equal scores stay in enumeration order.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	beam := lo.Slice(cands, 0, bs.width)

	memo := newFutureMemo(len(beam))
	gen := movegen.NewGenerator(bs.calc)
	out.Beam = make([]BeamEntry, 0, len(beam))

	bestIdx := -1
	for _, c := range beam {
		cleared, lines := board.ClearLines(board.Stamp(g, c.Shape, c.X, c.Y))
		future, ok := memo.lookup(cleared)
		if !ok {
			gen.Generate(cleared, next)
			future = gen.Best().Score
			memo.store(cleared, future)
		}
		entry := BeamEntry{
			Candidate:    c,
			LinesCleared: lines,
			Future:       future,
			Combined:     c.Score + bs.discount*future,
		}
		if bs.discount == 0 {
			// 0 * -Inf is NaN; a zero discount ignores the future entirely.
			entry.Combined = c.Score
		}
		out.Beam = append(out.Beam, entry)
		if bestIdx == -1 || entry.Combined > out.Beam[bestIdx].Combined {
			bestIdx = len(out.Beam) - 1
		}
	}

	winner := out.Beam[bestIdx]
	out.Best = winner.Placement
	out.Best.Score = winner.Combined
	if math.IsInf(winner.Combined, -1) {
		log.Debug().Msg("next-piece-tops-out-everywhere")
		out.Best.Score = winner.Score
	}
	out.Found = true
	log.Debug().Int("legal", out.Legal).Int("beam", len(out.Beam)).
		Int("memo-hits", memo.hits).
		Str("best", out.Best.ShortDescription()).
		Float64("combined", winner.Combined).
		Msg("beam-search-done")
	return out
}

// BeamDetails renders the beam as a table, best immediate score first.
func (o Outcome) BeamDetails() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s%-18s%-10s%-7s%-10s%-10s\n", "#", "Placement", "Now", "Lines", "Future", "Combined")
	for i, e := range o.Beam {
		fmt.Fprintf(&sb, "%-4d%-18s%-10.3f%-7d%-10.3f%-10.3f\n",
			i+1, e.ShortDescription(), e.Score, e.LinesCleared, e.Future, e.Combined)
	}
	return sb.String()
}
