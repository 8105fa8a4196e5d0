package autoplay

// Self-play data collection: many independent games, one CSV line each.

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/tetrabot/config"
	"github.com/domino14/tetrabot/engine"
	"github.com/domino14/tetrabot/stats"
)

var (
	GamesPlayed = expvar.NewInt("autoplayGamesPlayed")
	IsPlaying   = expvar.NewInt("autoplayIsPlaying")
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Options for a batch of games.
type Options struct {
	Games     int
	Threads   int
	Width     int
	Height    int
	MaxPieces int
	// Logfile receives one CSV line per game. Empty means no log.
	Logfile string
	// Seeds, if set, fixes the piece stream of game i to Seeds[i].
	Seeds [][32]byte
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Games:     cfg.GetInt(config.ConfigAutoplayGames),
		Threads:   cfg.GetInt(config.ConfigAutoplayThreads),
		Width:     cfg.GetInt(config.ConfigAutoplayWidth),
		Height:    cfg.GetInt(config.ConfigAutoplayHeight),
		MaxPieces: cfg.GetInt(config.ConfigAutoplayMaxPieces),
		Logfile:   cfg.GetString(config.ConfigAutoplayLogfile),
	}
}

// Summary aggregates the results of a batch.
type Summary struct {
	Results   []GameResult
	Lines     stats.Statistic
	Pieces    stats.Statistic
	ToppedOut int
}

func (s *Summary) add(r GameResult) {
	s.Results = append(s.Results, r)
	s.Lines.Push(float64(r.Lines))
	s.Pieces.Push(float64(r.Pieces))
	if r.ToppedOut {
		s.ToppedOut++
	}
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", len(s.Results))
	if len(s.Results) == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "Topped out: %d (%.3f%%)\n", s.ToppedOut,
		100*float64(s.ToppedOut)/float64(len(s.Results)))
	fmt.Fprintf(&sb, "Lines:  %s\n", s.Lines.Summary(95))
	fmt.Fprintf(&sb, "Pieces: %s\n", s.Pieces.Summary(95))
	if s.Lines.Max() > s.Lines.Min() {
		data := make([]float64, len(s.Results))
		for i, r := range s.Results {
			data[i] = float64(r.Lines)
		}
		sb.WriteString("\nLines cleared:\n")
		if err := histogram.Fprint(&sb, histogram.Hist(15, data), histogram.Linear(40)); err != nil {
			log.Err(err).Msg("histogram-failed")
		}
	}
	return sb.String()
}

// PlayGames plays opts.Games games over opts.Threads goroutines and
// returns once they are all done or ctx is cancelled. Results are in
// game order.
func PlayGames(ctx context.Context, eng *engine.Engine, opts Options) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	if opts.Games < 0 {
		return nil, fmt.Errorf("cannot play %d games", opts.Games)
	}
	if len(opts.Seeds) > 0 && len(opts.Seeds) < opts.Games {
		return nil, fmt.Errorf("%d seeds for %d games", len(opts.Seeds), opts.Games)
	}
	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	log.Debug().Msgf("Starting %v games, %v threads", opts.Games, threads)

	var logchan chan string
	if opts.Logfile != "" {
		logchan = make(chan string, 100)
	}
	runners := make([]*GameRunner, threads)
	for t := range runners {
		r, err := NewGameRunner(logchan, eng, opts.Width, opts.Height, opts.MaxPieces)
		if err != nil {
			return nil, err
		}
		runners[t] = r
	}

	logDone := make(chan error, 1)
	if logchan != nil {
		logfile, err := os.Create(opts.Logfile)
		if err != nil {
			return nil, err
		}
		go func() {
			w := bufio.NewWriter(logfile)
			w.WriteString(CSVHeader)
			for msg := range logchan {
				w.WriteString(msg)
			}
			err := w.Flush()
			if cerr := logfile.Close(); err == nil {
				err = cerr
			}
			log.Debug().Msg("Exiting game logger goroutine!")
			logDone <- err
		}()
	} else {
		logDone <- nil
	}

	results := make([]GameResult, opts.Games)
	played := make([]bool, opts.Games)
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return gctx.Err()
			}
		}
		return nil
	})
	for _, r := range runners {
		g.Go(func() error {
			for i := range jobs {
				seed := NewSeed()
				if len(opts.Seeds) > 0 {
					seed = opts.Seeds[i]
				}
				results[i] = r.PlayGame(i, seed)
				played[i] = true
				GamesPlayed.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if logchan != nil {
		close(logchan)
	}
	if lerr := <-logDone; lerr != nil && err == nil {
		err = lerr
	}

	sum := &Summary{}
	for i, r := range results {
		if played[i] {
			sum.add(r)
		}
	}
	log.Info().Int("games", len(sum.Results)).Float64("mean-lines", sum.Lines.Mean()).
		Msg("autoplay-finished")
	return sum, err
}
