package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrabot/config"
	"github.com/domino14/tetrabot/shell"
)

var (
	GitVersion string
)

//go:embed tetrabot.txt
var banner string

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)
	fmt.Println(banner)
	fmt.Println(GitVersion)

	cfg := &config.Config{}
	var args []string
	var cmdWords []string
	for _, a := range os.Args[1:] {
		if strings.HasPrefix(a, "--") {
			args = append(args, a)
		} else {
			cmdWords = append(cmdWords, a)
		}
	}
	if err := cfg.Load(args); err != nil {
		panic(err)
	}
	cfg.AdjustRelativePaths(exPath)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	log.Debug().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	argsLine := strings.TrimSpace(strings.Join(cmdWords, " "))

	sc := shell.NewShellController(cfg, GitVersion)
	if argsLine == "" {
		go sc.Loop(sig)
	} else {
		sc.Execute(sig, argsLine)
		sig <- syscall.SIGINT
	}

	<-idleConnsClosed
	sc.Cleanup()
	log.Info().Msg("shell exiting")
}
