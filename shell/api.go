package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/tetrabot/autoplay"
	"github.com/domino14/tetrabot/board"
	"github.com/domino14/tetrabot/move"
	"github.com/domino14/tetrabot/movegen"
	"github.com/domino14/tetrabot/piece"
)

const defaultGenPlacements = 15

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) boardText() string {
	var sb strings.Builder
	sb.WriteString(sc.grid.ToDisplayText())
	fmt.Fprintf(&sb, "\nTurn %d, lines cleared %d\n", sc.turn, sc.lines)
	if sc.cur.Width() > 0 {
		fmt.Fprintf(&sb, "Current piece:\n%s\n", sc.cur)
	}
	if sc.next.Width() > 0 {
		fmt.Fprintf(&sb, "Next piece:\n%s\n", sc.next)
	}
	return sb.String()
}

func (sc *ShellController) resetBoard(g board.Grid) {
	sc.grid = g
	sc.turn = 0
	sc.lines = 0
	sc.curGenPlays = nil
}

func (sc *ShellController) newBoard(cmd *shellcmd) (*Response, error) {
	w, h := 10, 20
	var err error
	if len(cmd.args) == 2 {
		if w, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
		if h, err = strconv.Atoi(cmd.args[1]); err != nil {
			return nil, err
		}
	} else if len(cmd.args) != 0 {
		return nil, errors.New("usage: new [<width> <height>]")
	}
	g, err := board.New(w, h)
	if err != nil {
		return nil, err
	}
	sc.resetBoard(g)
	return msg(sc.boardText()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	data, err := os.ReadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	var rows []string
	for _, r := range strings.Split(string(data), "\n") {
		r = strings.TrimRight(r, "\r")
		if r == "" {
			continue
		}
		rows = append(rows, r)
	}
	g, err := board.FromRows(rows)
	if err != nil {
		return nil, err
	}
	sc.resetBoard(g)
	return msg(sc.boardText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.grid.Width() == 0 {
		return nil, errNoBoard
	}
	return msg(sc.boardText()), nil
}

// parseShape accepts a catalog name (T, S, ...) or the rows of a bitmap,
// e.g. `piece ### .#.`.
func parseShape(args []string) (piece.Shape, error) {
	if len(args) == 0 {
		return piece.Shape{}, errors.New("please give a piece name or its rows")
	}
	if len(args) == 1 {
		if s, err := piece.ByName(args[0]); err == nil {
			return s, nil
		}
	}
	g, err := board.FromRows(args)
	if err != nil {
		return piece.Shape{}, err
	}
	return piece.New(g.Cells(), g.Width(), g.Height())
}

func (sc *ShellController) setPiece(cmd *shellcmd) (*Response, error) {
	s, err := parseShape(cmd.args)
	if err != nil {
		return nil, err
	}
	sc.cur = s
	sc.curGenPlays = nil
	return msg("current piece:\n" + s.String()), nil
}

func (sc *ShellController) setNext(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "none" {
		sc.next = piece.Shape{}
		return msg("next piece cleared"), nil
	}
	s, err := parseShape(cmd.args)
	if err != nil {
		return nil, err
	}
	sc.next = s
	return msg("next piece:\n" + s.String()), nil
}

func (sc *ShellController) ready() error {
	if sc.grid.Width() == 0 {
		return errNoBoard
	}
	if sc.cur.Width() == 0 {
		return errNoPiece
	}
	return nil
}

func placementTableHeader() string {
	return "     Placement          Lines Holes Height Score\n"
}

func PlacementTableRow(idx int, c movegen.Candidate, f board.Features) string {
	return fmt.Sprintf("%3d: %-19s%-6d%-6d%-7d%-6.3f", idx+1,
		c.ShortDescription(), f.CompletedLines, f.Holes, f.MaxHeight, c.Score)
}

func (sc *ShellController) genPlacementsAndDescription(n int) string {
	cands := movegen.GenerateAll(sc.engine.Calculator(), sc.grid, sc.cur)
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	sc.curGenPlays = lo.Slice(cands, 0, n)
	if len(sc.curGenPlays) == 0 {
		return "no legal placements"
	}
	var sb strings.Builder
	sb.WriteString(placementTableHeader())
	for i, c := range sc.curGenPlays {
		f := board.Extract(board.Stamp(sc.grid, c.Shape, c.X, c.Y))
		sb.WriteString(PlacementTableRow(i, c, f))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	n := defaultGenPlacements
	if len(cmd.args) > 0 {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, errors.New("usage: gen [n], with n at least 1")
		}
	}
	return msg(sc.genPlacementsAndDescription(n)), nil
}

func (sc *ShellController) bestResult() (move.Result, string) {
	if sc.next.Width() == 0 {
		return sc.engine.Best(sc.grid, sc.cur), ""
	}
	out := sc.engine.Searcher().Search(sc.grid, sc.cur, sc.next)
	if !out.Found {
		return move.NotFound(), ""
	}
	return move.Result{Placement: out.Best, Found: true}, out.BeamDetails()
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	res, details := sc.bestResult()
	if !res.Found {
		return msg("no legal placement; the board is topped out"), nil
	}
	t := res.Tuple()
	text := fmt.Sprintf("best: %s score %.3f (scaled %d)", res.ShortDescription(), res.Score, t[3])
	if details != "" {
		text += "\n\n" + details
	}
	return msg(text), nil
}

// play commits a placement, clears rows and moves the next piece up to
// current. With no argument it plays the engine's choice; `play n` plays
// row n of the last `gen` listing.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	if len(cmd.args) > 0 {
		idx, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		if len(sc.curGenPlays) == 0 {
			return nil, errNoGenPlays
		}
		if idx < 1 || idx > len(sc.curGenPlays) {
			return nil, fmt.Errorf("play %d: choose a row from 1 to %d", idx, len(sc.curGenPlays))
		}
		return sc.commit(sc.curGenPlays[idx-1].Placement), nil
	}
	res, _ := sc.bestResult()
	if !res.Found {
		return msg("no legal placement; the board is topped out"), nil
	}
	return sc.commit(res.Placement), nil
}

func (sc *ShellController) commit(p move.Placement) *Response {
	rotated := piece.Rotate(sc.cur, p.Rotation)
	var lines int
	sc.grid, lines = board.ClearLines(board.Stamp(sc.grid, rotated, p.X, p.Y))
	sc.turn++
	sc.lines += lines
	sc.cur, sc.next = sc.next, piece.Shape{}
	sc.curGenPlays = nil
	return msg(fmt.Sprintf("played %s, cleared %d\n%s", p.ShortDescription(), lines, sc.boardText()))
}

func (sc *ShellController) version(cmd *shellcmd) (*Response, error) {
	if sc.gitVersion == "" {
		return msg("tetrabot (unversioned build)"), nil
	}
	return msg("tetrabot " + sc.gitVersion), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	opts := autoplay.OptionsFromConfig(sc.config)
	var err error
	if len(cmd.args) > 0 {
		if opts.Games, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	if opts.Width, err = cmd.options.IntDefault("width", opts.Width); err != nil {
		return nil, err
	}
	if opts.Height, err = cmd.options.IntDefault("height", opts.Height); err != nil {
		return nil, err
	}
	if opts.MaxPieces, err = cmd.options.IntDefault("pieces", opts.MaxPieces); err != nil {
		return nil, err
	}
	if f := cmd.options.String("file"); f != "" {
		opts.Logfile = f
	}
	sum, err := autoplay.PlayGames(context.Background(), sc.engine, opts)
	if err != nil {
		return nil, err
	}
	return msg(sum.String()), nil
}
