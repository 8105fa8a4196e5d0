package shell

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/config"
	"github.com/domino14/tetrabot/engine"
	"github.com/domino14/tetrabot/movegen"
	"github.com/domino14/tetrabot/piece"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoBoard           = errors.New("please create or load a board first with `new` or `load`")
	errNoPiece           = errors.New("please set the current piece first with `piece`")
	errNoGenPlays        = errors.New("please list placements first with `gen`")
)

type ShellController struct {
	l          *readline.Instance
	config     *config.Config
	engine     *engine.Engine
	gitVersion string

	grid        board.Grid
	cur         piece.Shape
	next        piece.Shape
	curGenPlays []movegen.Candidate
	turn        int
	lines       int
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, gitVersion string) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mtetrabot>\033[0m ",
		HistoryFile:     "/tmp/tetrabot_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	eng, err := engine.NewFromConfig(cfg)
	if err != nil {
		log.Err(err).Msg("falling back to default engine")
		eng = engine.NewDefault()
	}
	return &ShellController{l: l, config: cfg, engine: eng, gitVersion: gitVersion}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, positional arguments and
// -key value options. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") && len(fields[i]) > 1 {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newBoard(cmd)
	case "load":
		return sc.load(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "piece":
		return sc.setPiece(cmd)
	case "next":
		return sc.setNext(cmd)
	case "gen":
		return sc.generate(cmd)
	case "best":
		return sc.best(cmd)
	case "play":
		return sc.play(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "version":
		return sc.version(cmd)
	case "help":
		return sc.help(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
	return nil, errors.New("command " + cmd.cmd + " not found")
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err != nil {
		if err == errNoData {
			return nil
		}
		sc.showError(err)
		return nil
	}
	if cmd.cmd == "exit" || cmd.cmd == "bye" {
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Execute runs a single command line, as given on the command line of
// the shell binary.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.standardModeSwitch(line, sig)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Error().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Debug().Msg("cleaning up shell")
}
