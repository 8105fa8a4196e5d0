package bot

import (
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/move"
	"github.com/domino14/tetrabot/piece"
	"github.com/domino14/tetrabot/wire"
)

var ErrBotError = errors.New("bot returned an error")

type Client struct {
	// NATS connection
	nc       *nats.Conn
	channel  string
	timeout  time.Duration
	attempts uint
}

func NewClient(nc *nats.Conn, channel string) *Client {
	return &Client{nc: nc, channel: channel, timeout: 10 * time.Second, attempts: 3}
}

// MakeRequest builds the wire request. A zero-width next piece is left out.
func MakeRequest(g board.Grid, cur, next piece.Shape) *wire.Request {
	req := &wire.Request{
		Grid:        g.Cells(),
		GridWidth:   int32(g.Width()),
		GridHeight:  int32(g.Height()),
		Piece:       cur.Cells(),
		PieceWidth:  int32(cur.Width()),
		PieceHeight: int32(cur.Height()),
	}
	if next.Width() > 0 {
		req.NextPiece = next.Cells()
		req.NextWidth = int32(next.Width())
		req.NextHeight = int32(next.Height())
	}
	return req
}

// ResultFromResponse turns a decoded reply back into a result. The score
// loses precision beyond hundredths.
func ResultFromResponse(resp *wire.Response) (move.Result, error) {
	if resp.Error != "" {
		return move.NotFound(), errors.Join(ErrBotError, errors.New(resp.Error))
	}
	if !resp.Found {
		return move.NotFound(), nil
	}
	return move.Result{
		Placement: move.Placement{
			X:        int(resp.X),
			Y:        int(resp.Y),
			Rotation: int(resp.Rotation),
			Score:    float64(resp.ScaledScore) / 100,
		},
		Found: true,
	}, nil
}

// RequestMove sends a position to the bot and waits for its move. Timed
// out requests are retried with backoff.
func (c *Client) RequestMove(g board.Grid, cur, next piece.Shape) (move.Result, error) {
	data := MakeRequest(g, cur, next).Marshal()
	var res *nats.Msg
	err := retry.Do(
		func() error {
			var err error
			res, err = c.nc.Request(c.channel, data, c.timeout)
			return err
		},
		retry.Attempts(c.attempts),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, nats.ErrTimeout) || errors.Is(err, nats.ErrNoResponders)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("did-not-receive-move-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		return move.NotFound(), err
	}

	resp := wire.Response{}
	if err := resp.Unmarshal(res.Data); err != nil {
		return move.NotFound(), err
	}
	return ResultFromResponse(&resp)
}
