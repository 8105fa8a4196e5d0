// Package bot serves move requests over NATS request/reply.
package bot

import (
	"fmt"
	"runtime"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrabot/config"
	"github.com/domino14/tetrabot/engine"
	"github.com/domino14/tetrabot/move"
	"github.com/domino14/tetrabot/wire"
)

type Bot struct {
	config *config.Config
	engine *engine.Engine
}

func NewBot(config *config.Config, eng *engine.Engine) *Bot {
	return &Bot{config: config, engine: eng}
}

func (bot *Bot) handle(data []byte) *wire.Response {
	req := wire.Request{}
	if err := req.Unmarshal(data); err != nil {
		return wire.ErrorResponse("could not parse request", err)
	}
	var res move.Result
	var err error
	if req.HasNext() {
		res, err = bot.engine.BestMoveWithLookahead(
			req.Grid, int(req.GridWidth), int(req.GridHeight),
			req.Piece, int(req.PieceWidth), int(req.PieceHeight),
			req.NextPiece, int(req.NextWidth), int(req.NextHeight))
	} else {
		res, err = bot.engine.BestMove(
			req.Grid, int(req.GridWidth), int(req.GridHeight),
			req.Piece, int(req.PieceWidth), int(req.PieceHeight))
	}
	if err != nil {
		return wire.ErrorResponse("invalid request", err)
	}
	log.Debug().Bool("lookahead", req.HasNext()).
		Str("move", res.ShortDescription()).Msg("generated-move")
	return wire.ResponseFromResult(res)
}

// Main subscribes the bot to channel and serves requests until the
// process exits.
func Main(channel string, bot *Bot) error {
	nc, err := nats.Connect(bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return fmt.Errorf("connecting to nats: %w", err)
	}
	_, err = nc.Subscribe(channel, func(m *nats.Msg) {
		log.Debug().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.handle(m.Data)
		if err := m.Respond(resp.Marshal()); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		return err
	}
	nc.Flush()

	if err := nc.LastError(); err != nil {
		return err
	}

	log.Info().Msgf("Listening on [%s]", channel)

	runtime.Goexit()
	return nil
}
