// Package autoplay runs the engine against a random piece stream and
// collects statistics about how long it survives.
package autoplay

import (
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/engine"
	"github.com/domino14/tetrabot/piece"
)

// PieceSource yields the next piece of a game.
type PieceSource func() piece.Shape

// RandomPieces draws uniformly from the tetromino catalog. The same seed
// always yields the same sequence.
func RandomPieces(seed [32]byte) PieceSource {
	rng := frand.NewCustom(seed[:], 1024, 12)
	names := piece.Names()
	shapes := make([]piece.Shape, len(names))
	for i, n := range names {
		s, err := piece.ByName(n)
		if err != nil {
			panic(err)
		}
		shapes[i] = s
	}
	return func() piece.Shape {
		return shapes[rng.Intn(len(shapes))]
	}
}

// NewSeed returns a fresh random game seed.
func NewSeed() [32]byte {
	var seed [32]byte
	frand.Read(seed[:])
	return seed
}

func EncodeSeed(seed [32]byte) string {
	return base64.URLEncoding.EncodeToString(seed[:])
}

func DecodeSeed(s string) ([32]byte, error) {
	var seed [32]byte
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return seed, err
	}
	if len(b) != len(seed) {
		return seed, fmt.Errorf("seed is %d bytes, want %d", len(b), len(seed))
	}
	copy(seed[:], b)
	return seed, nil
}

// GameResult describes one finished game.
type GameResult struct {
	ID        int
	Seed      string
	Pieces    int
	Lines     int
	ToppedOut bool
	// MaxHeight is the tallest stack left after any lock and clear.
	MaxHeight int
}

const CSVHeader = "gameID,seed,pieces,lines,toppedout,maxheight\n"

func (r GameResult) CSV() string {
	return fmt.Sprintf("%d,%s,%d,%d,%t,%d\n",
		r.ID, r.Seed, r.Pieces, r.Lines, r.ToppedOut, r.MaxHeight)
}

// GameRunner plays single games. A GameRunner is not safe for concurrent
// use, but the engine it wraps is, so several runners may share one.
type GameRunner struct {
	engine    *engine.Engine
	width     int
	height    int
	maxPieces int
	logchan   chan string

	grid board.Grid
	cur  piece.Shape
	next piece.Shape
}

func NewGameRunner(logchan chan string, eng *engine.Engine, width, height, maxPieces int) (*GameRunner, error) {
	if _, err := board.New(width, height); err != nil {
		return nil, err
	}
	if maxPieces < 1 {
		return nil, fmt.Errorf("max pieces must be positive, got %d", maxPieces)
	}
	return &GameRunner{
		engine:    eng,
		width:     width,
		height:    height,
		maxPieces: maxPieces,
		logchan:   logchan,
	}, nil
}

// Grid is the board as the last game left it.
func (r *GameRunner) Grid() board.Grid {
	return r.grid
}

// PlayBestTurn places the current piece where the engine says, clears
// completed rows and advances the piece queue. It reports the number of
// rows cleared, or ok=false if the piece has nowhere to go.
func (r *GameRunner) PlayBestTurn(src PieceSource) (lines int, ok bool) {
	res := r.engine.BestWithLookahead(r.grid, r.cur, r.next)
	if !res.Found {
		return 0, false
	}
	rotated := piece.Rotate(r.cur, res.Rotation)
	r.grid, lines = board.ClearLines(board.Stamp(r.grid, rotated, res.X, res.Y))
	r.cur, r.next = r.next, src()
	return lines, true
}

// PlayGame plays until the stack tops out or the piece limit is reached.
func (r *GameRunner) PlayGame(id int, seed [32]byte) GameResult {
	src := RandomPieces(seed)
	return r.play(id, EncodeSeed(seed), src)
}

func (r *GameRunner) play(id int, seedName string, src PieceSource) GameResult {
	r.grid, _ = board.New(r.width, r.height)
	r.cur, r.next = src(), src()

	res := GameResult{ID: id, Seed: seedName}
	for res.Pieces < r.maxPieces {
		lines, ok := r.PlayBestTurn(src)
		if !ok {
			res.ToppedOut = true
			break
		}
		res.Pieces++
		res.Lines += lines
		res.MaxHeight = max(res.MaxHeight, board.MaxHeight(board.ColumnHeights(r.grid)))
	}
	log.Debug().Int("game", id).Int("pieces", res.Pieces).Int("lines", res.Lines).
		Bool("topped-out", res.ToppedOut).Msg("game-over")
	if r.logchan != nil {
		r.logchan <- res.CSV()
	}
	return res
}
