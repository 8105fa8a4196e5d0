package bot

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/config"
	"github.com/domino14/tetrabot/engine"
	"github.com/domino14/tetrabot/piece"
	"github.com/domino14/tetrabot/wire"
)

func newTestBot(t *testing.T) *Bot {
	cfg := &config.Config{}
	if err := cfg.Load(nil); err != nil {
		t.Fatal(err)
	}
	return NewBot(cfg, engine.NewDefault())
}

func roundTrip(t *testing.T, bot *Bot, req *wire.Request) *wire.Response {
	resp := bot.handle(req.Marshal())
	decoded := &wire.Response{}
	if err := decoded.Unmarshal(resp.Marshal()); err != nil {
		t.Fatal(err)
	}
	return decoded
}

func TestHandleSinglePly(t *testing.T) {
	is := is.New(t)
	dot := piece.MustNew([]int32{1}, 1, 1)
	resp := roundTrip(t, newTestBot(t), MakeRequest(board.SingleGap.Grid(), dot, piece.Shape{}))
	is.Equal(resp.Error, "")
	is.True(resp.Found)
	is.Equal(resp.X, int32(2))
	is.Equal(resp.Y, int32(3))

	res, err := ResultFromResponse(resp)
	is.NoErr(err)
	is.True(res.Found)
	is.Equal(res.X, 2)
}

func TestHandleLookahead(t *testing.T) {
	is := is.New(t)
	b := newTestBot(t)
	g := board.Jagged.Grid()
	tee, err := piece.ByName("T")
	is.NoErr(err)
	ess, err := piece.ByName("S")
	is.NoErr(err)

	want := engine.NewDefault().BestWithLookahead(g, tee, ess)
	resp := roundTrip(t, b, MakeRequest(g, tee, ess))
	is.True(resp.Found)
	is.Equal(resp.X, int32(want.X))
	is.Equal(resp.Y, int32(want.Y))
	is.Equal(resp.Rotation, int32(want.Rotation))
	is.Equal(resp.ScaledScore, want.Tuple()[3])
}

func TestHandleToppedOut(t *testing.T) {
	is := is.New(t)
	dot := piece.MustNew([]int32{1}, 1, 1)
	resp := roundTrip(t, newTestBot(t), MakeRequest(board.ToppedOut.Grid(), dot, dot))
	is.Equal(resp.Error, "")
	is.True(!resp.Found)

	res, err := ResultFromResponse(resp)
	is.NoErr(err)
	is.True(!res.Found)
}

func TestHandleBadRequests(t *testing.T) {
	is := is.New(t)
	b := newTestBot(t)

	resp := b.handle([]byte{0xff})
	is.True(resp.Error != "")

	req := &wire.Request{Grid: []int32{0, 0, 0}, GridWidth: 2, GridHeight: 2, Piece: []int32{1}, PieceWidth: 1, PieceHeight: 1}
	resp = roundTrip(t, b, req)
	is.True(resp.Error != "")
	is.True(!resp.Found)

	_, err := ResultFromResponse(resp)
	is.True(errors.Is(err, ErrBotError))
}
