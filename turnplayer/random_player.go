package turnplayer

import (
	"context"

	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/negamax"
)

// RandomPlayer plays a uniformly random legal move. It is a baseline
// opponent, and is used to vary the openings of automatic games.
type RandomPlayer struct{}

func (RandomPlayer) Name() string {
	return "random"
}

func (RandomPlayer) BestMove(ctx context.Context, b board.Board, c board.Color) (Choice, error) {
	moves := movegen.LegalMoves(b, c)
	if len(moves) == 0 {
		return Choice{}, negamax.ErrNoLegalMoves
	}
	return Choice{Move: moves[frand.Intn(len(moves))]}, nil
}
