// Package automatic plays computer vs computer Reversi games and collects
// their results.
package automatic

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/negamax"
	"github.com/domino14/reversi/turnplayer"
)

const (
	NegamaxPlayer = "negamax"
	RandomPlayer  = "random"
)

// GameRecord is the result of one finished game.
type GameRecord struct {
	ID      string
	Moves   []move.Move
	Turns   int
	Outcome game.Outcome
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game    *game.Game
	config  *config.Config
	logchan chan string
	players [2]turnplayer.Player

	openingPlies int
	solveLog     io.Writer
}

// NewGameRunner creates a runner with negamax players on both sides,
// searching to the depths in cfg.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, config: cfg}
	if err := r.Init(NegamaxPlayer, NegamaxPlayer); err != nil {
		return nil, err
	}
	return r, nil
}

// Init sets up the two players. Each is either NegamaxPlayer or
// RandomPlayer.
func (r *GameRunner) Init(player1, player2 string) error {
	depths := [2]int{}
	var err error
	depths[board.XBlack], depths[board.OWhite], err = r.config.Depths()
	if err != nil {
		return err
	}
	for idx, kind := range []string{player1, player2} {
		switch kind {
		case NegamaxPlayer:
			s := negamax.NewSolver()
			if t := r.config.GetInt(config.ConfigThreads); t > 0 {
				s.SetThreads(t)
			}
			s.SetParallelMinDepth(r.config.GetInt(config.ConfigParallelMinDepth))
			if r.solveLog != nil {
				s.SetLogStream(r.solveLog)
			}
			r.players[idx] = turnplayer.NewNegamaxPlayerWithSolver(s, depths[idx])
		case RandomPlayer:
			r.players[idx] = turnplayer.RandomPlayer{}
		default:
			return fmt.Errorf("unknown player type %q", kind)
		}
	}
	r.openingPlies = r.config.GetInt(config.ConfigRandomOpeningPlies)
	log.Debug().Str("x", r.players[0].Name()).Str("o", r.players[1].Name()).
		Int("opening-plies", r.openingPlies).Msg("game-runner-init")
	return nil
}

// SetSolveLog makes the negamax players write their search log to w.
// Call Init again afterwards for it to take effect.
func (r *GameRunner) SetSolveLog(w io.Writer) {
	r.solveLog = w
}

func (r *GameRunner) Players() [2]turnplayer.Player {
	return r.players
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayGame plays one game to the end. The first few plies, if the config
// asks for any, are played at random.
func (r *GameRunner) PlayGame(ctx context.Context) (GameRecord, error) {
	r.game = game.NewGame([2]turnplayer.Player{turnplayer.RandomPlayer{}, turnplayer.RandomPlayer{}})
	rec := GameRecord{ID: hex.EncodeToString(frand.Bytes(8))}

	for r.game.Playing() && r.game.Turn() < r.openingPlies {
		res, err := r.game.PlayTurn(ctx)
		if err != nil {
			return rec, err
		}
		r.logTurn(rec.ID, res)
	}
	r.game.SetPlayer(board.XBlack, r.players[board.XBlack])
	r.game.SetPlayer(board.OWhite, r.players[board.OWhite])

	err := r.game.PlayToEnd(ctx, func(res turnplayer.TurnResult) {
		r.logTurn(rec.ID, res)
	})
	if err != nil {
		return rec, err
	}
	rec.Moves = r.game.Moves()
	rec.Turns = r.game.Turn()
	rec.Outcome = r.game.Outcome()
	log.Debug().Str("id", rec.ID).Int("spread", rec.Outcome.Spread()).Msg("game-over")
	return rec, nil
}

func (r *GameRunner) logTurn(gameID string, res turnplayer.TurnResult) {
	if r.logchan == nil {
		return
	}
	b := r.game.Board()
	mv := "pass"
	if !res.Passed {
		mv = res.Move.String()
	}
	r.logchan <- fmt.Sprintf("%s,%d,%v,%s,%q,%d,%v,%d,%d,%d,%d\n",
		gameID,
		r.game.Turn(),
		res.Color,
		res.Player,
		mv,
		res.Flips,
		res.Eval,
		res.Nodes,
		res.Elapsed.Milliseconds(),
		b.CountDisks(board.XBlack),
		b.CountDisks(board.OWhite))
}

// lockedWriter lets several solvers share one log file.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
