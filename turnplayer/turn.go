package turnplayer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/negamax"
)

// TurnResult describes one ply.
type TurnResult struct {
	Color  board.Color
	Player string
	// Passed is set when Color had no legal move. Nothing else is set
	// then, and the board was not touched.
	Passed  bool
	Move    move.Move
	Flips   int
	Eval    negamax.Evaluation
	Nodes   uint64
	Elapsed time.Duration
}

func (r TurnResult) String() string {
	if r.Passed {
		return fmt.Sprintf("%v (%s) passes", r.Color, r.Player)
	}
	return fmt.Sprintf("%v (%s) plays %v, flipping %d (eval %v)",
		r.Color, r.Player, r.Move, r.Flips, r.Eval)
}

// Play runs one turn for c. If c cannot move the turn is a pass;
// otherwise p picks a move and it is applied to b. b is only written
// once the player has returned.
func Play(ctx context.Context, p Player, b *board.Board, c board.Color) (TurnResult, error) {
	res := TurnResult{Color: c, Player: p.Name()}
	if !movegen.HasLegalMove(*b, c) {
		res.Passed = true
		log.Debug().Str("color", c.String()).Msg("no-legal-moves-pass")
		return res, nil
	}
	tstart := time.Now()
	choice, err := p.BestMove(ctx, *b, c)
	if err != nil {
		return res, fmt.Errorf("%s choosing a move: %w", p.Name(), err)
	}
	res.Elapsed = time.Since(tstart)
	flips, err := movegen.ApplyMove(b, c, choice.Move)
	if err != nil {
		return res, fmt.Errorf("%s chose %v: %w", p.Name(), choice.Move, err)
	}
	res.Move = choice.Move
	res.Flips = flips
	res.Eval = choice.Eval
	res.Nodes = choice.Nodes
	log.Debug().
		Str("color", c.String()).
		Str("player", res.Player).
		Str("move", res.Move.String()).
		Int("flips", flips).
		Str("eval", res.Eval.String()).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("turn-played")
	return res, nil
}

// PlayTurn has the computer search depth plies for c and play the best
// move it finds.
func PlayTurn(ctx context.Context, b *board.Board, c board.Color, depth int) (TurnResult, error) {
	return Play(ctx, NewNegamaxPlayer(depth, 0), b, c)
}
