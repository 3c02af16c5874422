// Package game holds the state of a Reversi game between two players and
// runs it turn by turn until neither side can move.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/turnplayer"
)

var (
	ErrGameOver  = errors.New("the game is over")
	ErrNoPlayer  = errors.New("no computer player for the side on turn")
	ErrMustPass  = errors.New("side on turn has no legal move and must pass")
	ErrNotPassed = errors.New("side on turn has a legal move and cannot pass")
)

// Game is the state of a single game. X moves first. The game ends after
// two consecutive passes, which is when neither side has a legal move.
type Game struct {
	board   board.Board
	onturn  board.Color
	players [2]turnplayer.Player

	// passes counts consecutive passes. Any move resets it.
	passes  int
	history []turnplayer.TurnResult
}

// NewGame starts a game from the standard position. Either player may be
// nil; the side it plays can then only move through PlayHumanMove.
func NewGame(players [2]turnplayer.Player) *Game {
	return NewGameFromBoard(board.StartingBoard(), board.XBlack, players)
}

// NewGameFromBoard starts a game from an arbitrary position.
func NewGameFromBoard(b board.Board, onturn board.Color, players [2]turnplayer.Player) *Game {
	return &Game{
		board:   b,
		onturn:  onturn,
		players: players,
	}
}

// PlayTurn has the player on turn move (or pass), and hands the turn
// over.
func (g *Game) PlayTurn(ctx context.Context) (turnplayer.TurnResult, error) {
	if !g.Playing() {
		return turnplayer.TurnResult{}, ErrGameOver
	}
	p := g.players[g.onturn]
	if p == nil {
		if !movegen.HasLegalMove(g.board, g.onturn) {
			return g.Pass()
		}
		return turnplayer.TurnResult{}, fmt.Errorf("%w: %v", ErrNoPlayer, g.onturn)
	}
	res, err := turnplayer.Play(ctx, p, &g.board, g.onturn)
	if err != nil {
		return res, err
	}
	g.record(res)
	return res, nil
}

// PlayHumanMove validates and plays m for the side on turn. On error the
// game is unchanged.
func (g *Game) PlayHumanMove(m move.Move) (turnplayer.TurnResult, error) {
	if !g.Playing() {
		return turnplayer.TurnResult{}, ErrGameOver
	}
	if !movegen.HasLegalMove(g.board, g.onturn) {
		return turnplayer.TurnResult{}, ErrMustPass
	}
	flips, err := movegen.ApplyMove(&g.board, g.onturn, m)
	if err != nil {
		return turnplayer.TurnResult{}, err
	}
	res := turnplayer.TurnResult{
		Color:  g.onturn,
		Player: "human",
		Move:   m,
		Flips:  flips,
	}
	g.record(res)
	return res, nil
}

// Pass hands the turn over without moving. It is only allowed when the
// side on turn has no legal move.
func (g *Game) Pass() (turnplayer.TurnResult, error) {
	if !g.Playing() {
		return turnplayer.TurnResult{}, ErrGameOver
	}
	if movegen.HasLegalMove(g.board, g.onturn) {
		return turnplayer.TurnResult{}, ErrNotPassed
	}
	res := turnplayer.TurnResult{Color: g.onturn, Player: "human", Passed: true}
	g.record(res)
	return res, nil
}

func (g *Game) record(res turnplayer.TurnResult) {
	if res.Passed {
		g.passes++
	} else {
		g.passes = 0
	}
	g.history = append(g.history, res)
	g.onturn = g.onturn.Opponent()
	if !g.Playing() {
		log.Debug().Int("turns", len(g.history)).
			Int("x", g.board.CountDisks(board.XBlack)).
			Int("o", g.board.CountDisks(board.OWhite)).
			Msg("game-ended")
	}
}

// PlayToEnd plays turns until the game is over. onTurn, if not nil, is
// called after every turn, passes included.
func (g *Game) PlayToEnd(ctx context.Context, onTurn func(turnplayer.TurnResult)) error {
	for g.Playing() {
		res, err := g.PlayTurn(ctx)
		if err != nil {
			return err
		}
		if onTurn != nil {
			onTurn(res)
		}
	}
	return nil
}

// Playing is false once both sides have passed in a row.
func (g *Game) Playing() bool {
	return g.passes < 2
}

// Board returns a copy of the current position.
func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Color {
	return g.onturn
}

func (g *Game) Player(c board.Color) turnplayer.Player {
	return g.players[c]
}

func (g *Game) SetPlayer(c board.Color, p turnplayer.Player) {
	g.players[c] = p
}

// Turn is the number of turns played so far, passes included.
func (g *Game) Turn() int {
	return len(g.history)
}

// History returns the turns played so far.
func (g *Game) History() []turnplayer.TurnResult {
	return g.history
}

// Moves returns the moves played, without passes.
func (g *Game) Moves() []move.Move {
	moves := make([]move.Move, 0, len(g.history))
	for _, t := range g.history {
		if !t.Passed {
			moves = append(moves, t.Move)
		}
	}
	return moves
}
