// Package turnplayer plays single turns: it asks a player for a move and
// applies it to the board.
package turnplayer

import (
	"context"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/negamax"
)

// Choice is a player's pick for a turn.
type Choice struct {
	Move  move.Move
	Eval  negamax.Evaluation
	Nodes uint64
}

// Player picks moves. BestMove is only called when c has a legal move,
// and must not modify anything reachable from b.
type Player interface {
	Name() string
	BestMove(ctx context.Context, b board.Board, c board.Color) (Choice, error)
}
