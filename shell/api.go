package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/turnplayer"
)

var errAutoplayRunning = errors.New("autoplay is running; do `autoplay stop` first")

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) Int(key string) (int, error) {
	v, ok := c[key]
	if !ok {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v)
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

// settable are the config keys the set command may change.
var settable = []string{
	config.ConfigDebug,
	config.ConfigDepthBlack,
	config.ConfigDepthWhite,
	config.ConfigThreads,
	config.ConfigParallelMinDepth,
	config.ConfigRandomOpeningPlies,
	config.ConfigGames,
	config.ConfigGameThreads,
	config.ConfigLogFile,
	config.ConfigSolveLogFile,
}

func (sc *ShellController) gameDisplay() string {
	var sb strings.Builder
	b := sc.game.Board()
	sb.WriteString(b.ToDisplayText())
	fmt.Fprintf(&sb, "X: %d  O: %d\n", b.CountDisks(board.XBlack), b.CountDisks(board.OWhite))
	if sc.game.Playing() {
		fmt.Fprintf(&sb, "%v to move (turn %d)", sc.game.PlayerOnTurn(), sc.game.Turn()+1)
	} else {
		sb.WriteString(sc.game.Outcome().String())
	}
	return sb.String()
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		usage(sc.out)
	} else {
		usageTopic(sc.out, cmd.args[0])
	}
	return nil, nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game = game.NewGame([2]turnplayer.Player{})
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	b := sc.game.Board()
	c := sc.game.PlayerOnTurn()
	mask, n := movegen.EnumerateLegalMoves(b, c)
	if n == 0 {
		return msg(fmt.Sprintf("%v has no legal moves and must pass", c)), nil
	}
	moves := board.Squares(mask)
	descs := lo.Map(moves, func(m move.Move, _ int) string {
		bc := b
		return fmt.Sprintf("%v (%d)", m, movegen.FlipDisks(m, &bc, c, false))
	})
	return msg(fmt.Sprintf("%d legal moves for %v: %s\n%s",
		n, c, strings.Join(descs, "  "), board.MaskToDisplayText(mask, c))), nil
}

func (sc *ShellController) afterTurn(res turnplayer.TurnResult) *Response {
	return msg(res.String() + "\n" + sc.gameDisplay())
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.autoplayRunning() {
		return nil, errAutoplayRunning
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play row,col")
	}
	m, err := move.Parse(strings.Join(cmd.args, ","))
	if err != nil {
		return nil, err
	}
	res, err := sc.game.PlayHumanMove(m)
	if err != nil {
		return nil, err
	}
	return sc.afterTurn(res), nil
}

func (sc *ShellController) pass(cmd *shellcmd) (*Response, error) {
	res, err := sc.game.Pass()
	if err != nil {
		return nil, err
	}
	return sc.afterTurn(res), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	c := sc.game.PlayerOnTurn()
	depthKey := config.ConfigDepthBlack
	if c == board.OWhite {
		depthKey = config.ConfigDepthWhite
	}
	plies, err := cmd.options.IntDefault("plies", sc.config.GetInt(depthKey))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	p := turnplayer.NewNegamaxPlayer(plies, threads)
	p.Solver().SetParallelMinDepth(sc.config.GetInt(config.ConfigParallelMinDepth))

	sc.game.SetPlayer(c, p)
	defer sc.game.SetPlayer(c, nil)
	res, err := sc.game.PlayTurn(context.Background())
	if err != nil {
		return nil, err
	}
	r := sc.afterTurn(res)
	if !res.Passed {
		r.message = sc.printer.Sprintf("searched %d nodes in %v\n", res.Nodes, res.Elapsed) + r.message
	}
	return r, nil
}

func (sc *ShellController) autoplayRunning() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			if !sc.autoplayRunning() {
				return nil, errors.New("autoplay is not running")
			}
			sc.autoplayCancel()
			<-sc.autoplayDone
			return msg("autoplay stopped"), nil
		case "status":
			return msg(sc.printer.Sprintf("%d games played, %d threads playing",
				automatic.CVCCounter.Value(), automatic.IsPlaying.Value())), nil
		default:
			return nil, errors.New("unknown autoplay argument " + cmd.args[0])
		}
	}
	if sc.autoplayRunning() {
		return nil, errAutoplayRunning
	}
	games, err := cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigGameThreads))
	if err != nil {
		return nil, err
	}
	logfile := cmd.options.String("file")
	if logfile == "" {
		logfile = sc.config.GetString(config.ConfigLogFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan struct{})
	go func() {
		defer close(sc.autoplayDone)
		summary, err := automatic.StartCompVCompGames(ctx, sc.config, games, threads, logfile)
		if err != nil && !errors.Is(err, context.Canceled) {
			sc.showError(err)
		}
		if summary != nil {
			sc.showMessage(summary.String())
		}
	}()
	return msg(sc.printer.Sprintf("playing %d games on %d threads; logging turns to %s",
		games, threads, logfile)), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if sc.autoplayRunning() {
		return nil, errAutoplayRunning
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file> [-turn x|o]")
	}
	dat, err := os.ReadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	b, err := board.FromDisplayText(string(dat))
	if err != nil {
		return nil, err
	}
	onturn := board.XBlack
	switch strings.ToLower(cmd.options.String("turn")) {
	case "", "x":
	case "o":
		onturn = board.OWhite
	default:
		return nil, errors.New("turn must be x or o")
	}
	sc.game = game.NewGameFromBoard(b, onturn, [2]turnplayer.Player{})
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		keys := append([]string{}, settable...)
		sort.Strings(keys)
		lines := lo.Map(keys, func(k string, _ int) string {
			return fmt.Sprintf("%-22s%v", k, sc.config.Get(k))
		})
		return msg(strings.Join(lines, "\n")), nil
	}
	opt := cmd.args[0]
	if !lo.Contains(settable, opt) {
		return nil, errors.New("cannot set " + opt)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", opt, sc.config.Get(opt))), nil
	}
	if sc.autoplayRunning() {
		return nil, errAutoplayRunning
	}
	val := cmd.args[1]
	switch opt {
	case config.ConfigDebug:
		on, err := strconv.ParseBool(val)
		if err != nil {
			return nil, err
		}
		sc.config.Set(opt, on)
		if on {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	case config.ConfigLogFile, config.ConfigSolveLogFile:
		sc.config.Set(opt, val)
	default:
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if n < 0 || (n == 0 && opt != config.ConfigRandomOpeningPlies) {
			return nil, fmt.Errorf("%s must be positive", opt)
		}
		sc.config.Set(opt, n)
	}
	return msg(fmt.Sprintf("set %s to %v", opt, sc.config.Get(opt))), nil
}
