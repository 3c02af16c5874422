package turnplayer

import (
	"context"
	"fmt"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/negamax"
)

// NegamaxPlayer searches a fixed number of plies.
type NegamaxPlayer struct {
	solver *negamax.Solver
	plies  int
}

// NewNegamaxPlayer creates a player that searches plies deep with the
// given number of threads. threads <= 0 keeps the solver default.
func NewNegamaxPlayer(plies, threads int) *NegamaxPlayer {
	s := negamax.NewSolver()
	if threads > 0 {
		s.SetThreads(threads)
	}
	return &NegamaxPlayer{solver: s, plies: plies}
}

// NewNegamaxPlayerWithSolver wraps an already configured solver.
func NewNegamaxPlayerWithSolver(s *negamax.Solver, plies int) *NegamaxPlayer {
	return &NegamaxPlayer{solver: s, plies: plies}
}

func (p *NegamaxPlayer) Name() string {
	return fmt.Sprintf("negamax-%d", p.plies)
}

func (p *NegamaxPlayer) Plies() int {
	return p.plies
}

func (p *NegamaxPlayer) Solver() *negamax.Solver {
	return p.solver
}

func (p *NegamaxPlayer) BestMove(ctx context.Context, b board.Board, c board.Color) (Choice, error) {
	res, err := p.solver.Solve(ctx, b, c, p.plies)
	if err != nil {
		return Choice{}, err
	}
	return Choice{Move: res.Move, Eval: res.Eval, Nodes: res.Nodes}, nil
}
