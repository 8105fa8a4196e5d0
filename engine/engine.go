// Package engine is the entry point callers use: it takes raw row-major
// buffers, validates them, and runs either the single-ply or the two-ply
// search.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/cache"
	"github.com/domino14/tetrabot/config"
	"github.com/domino14/tetrabot/equity"
	"github.com/domino14/tetrabot/lookahead"
	"github.com/domino14/tetrabot/move"
	"github.com/domino14/tetrabot/movegen"
	"github.com/domino14/tetrabot/piece"
)

// Input validation errors. They are the same values the board and piece
// packages return, so errors.Is works against either.
var (
	ErrMalformedGrid  = board.ErrMalformedGrid
	ErrMalformedPiece = piece.ErrMalformedShape
)

// Engine is immutable once built and may be shared across goroutines.
type Engine struct {
	calc     equity.Calculator
	searcher *lookahead.BeamSearcher
}

func New(calc equity.Calculator, beamWidth int, discount float64) (*Engine, error) {
	bs, err := lookahead.NewBeamSearcher(calc, beamWidth, discount)
	if err != nil {
		return nil, err
	}
	return &Engine{calc: calc, searcher: bs}, nil
}

// NewDefault uses the default weights, beam width and discount.
func NewDefault() *Engine {
	lc, err := equity.NewLinearCalculator(equity.DefaultWeights())
	if err != nil {
		panic(err)
	}
	e, err := New(lc, lookahead.DefaultBeamWidth, lookahead.DefaultDiscount)
	if err != nil {
		panic(err)
	}
	return e
}

// NewFromConfig reads the weights file and search parameters from cfg.
// A weights file is parsed once per process.
func NewFromConfig(cfg *config.Config) (*Engine, error) {
	path := cfg.GetString(config.ConfigWeightsFile)
	obj, err := cache.Load("weights:"+path, func(string) (any, error) {
		return equity.LoadWeights(path)
	})
	if err != nil {
		return nil, err
	}
	lc, err := equity.NewLinearCalculator(obj.(equity.Weights))
	if err != nil {
		return nil, err
	}
	return New(lc, cfg.GetInt(config.ConfigBeamWidth), cfg.GetFloat64(config.ConfigFutureDiscount))
}

func (e *Engine) Calculator() equity.Calculator     { return e.calc }
func (e *Engine) Searcher() *lookahead.BeamSearcher { return e.searcher }

func parseGrid(cells []int32, w, h int) (board.Grid, error) {
	g, err := board.FromCells(cells, w, h)
	if err != nil {
		return board.Grid{}, fmt.Errorf("grid: %w", err)
	}
	return g, nil
}

func parsePiece(cells []int32, w, h int) (piece.Shape, error) {
	s, err := piece.New(cells, w, h)
	if err != nil {
		return piece.Shape{}, fmt.Errorf("piece: %w", err)
	}
	return s, nil
}

// BestMove returns the best single-ply placement of the piece.
func (e *Engine) BestMove(grid []int32, gw, gh int, pc []int32, pw, ph int) (move.Result, error) {
	g, err := parseGrid(grid, gw, gh)
	if err != nil {
		return move.NotFound(), err
	}
	s, err := parsePiece(pc, pw, ph)
	if err != nil {
		return move.NotFound(), err
	}
	return e.Best(g, s), nil
}

// BestMoveWithLookahead ranks placements of the piece by how well the
// next piece can follow. An empty next piece falls back to BestMove.
func (e *Engine) BestMoveWithLookahead(grid []int32, gw, gh int, pc []int32, pw, ph int,
	next []int32, nw, nh int) (move.Result, error) {

	if len(next) == 0 {
		return e.BestMove(grid, gw, gh, pc, pw, ph)
	}
	g, err := parseGrid(grid, gw, gh)
	if err != nil {
		return move.NotFound(), err
	}
	s, err := parsePiece(pc, pw, ph)
	if err != nil {
		return move.NotFound(), err
	}
	ns, err := parsePiece(next, nw, nh)
	if err != nil {
		return move.NotFound(), fmt.Errorf("next %w", err)
	}
	return e.BestWithLookahead(g, s, ns), nil
}

// Best is BestMove for already-validated values.
func (e *Engine) Best(g board.Grid, s piece.Shape) move.Result {
	p := movegen.BestPlacement(e.calc, g, s)
	if p.IsNone() {
		log.Debug().Msg("no-legal-placement")
		return move.NotFound()
	}
	return move.Result{Placement: p, Found: true}
}

// BestWithLookahead is BestMoveWithLookahead for already-validated values.
func (e *Engine) BestWithLookahead(g board.Grid, cur, next piece.Shape) move.Result {
	out := e.searcher.Search(g, cur, next)
	if !out.Found {
		log.Debug().Msg("no-legal-placement")
		return move.NotFound()
	}
	return move.Result{Placement: out.Best, Found: true}
}
