package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrabot/autoplay"
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

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	eng, err := engine.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("building engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := autoplay.OptionsFromConfig(cfg)
	sum, err := autoplay.PlayGames(ctx, eng, opts)
	if err != nil {
		log.Err(err).Msg("autoplay-stopped-early")
	}
	if sum != nil {
		fmt.Print(sum.String())
	}
	if opts.Logfile != "" {
		log.Info().Str("logfile", opts.Logfile).Msg("games written")
	}
}
