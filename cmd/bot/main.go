package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrabot/bot"
	"github.com/domino14/tetrabot/config"
	"github.com/domino14/tetrabot/engine"
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.AdjustRelativePaths(exPath)
	log.Info().Msgf("Loaded config: %v, exPath: %v", cfg.SanitizedSettings(), exPath)

	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	eng, err := engine.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("building engine")
	}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	b := bot.NewBot(cfg, eng)
	go func() {
		if err := bot.Main(cfg.GetString(config.ConfigNatsChannel), b); err != nil {
			log.Fatal().Err(err).Msg("bot exited")
		}
	}()

	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
