// Package negamax picks Reversi moves with a depth-limited negamax
// search with alpha-beta pruning. Sibling moves are searched in parallel.
package negamax

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/equity"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
(* Initial call for Player A's root node *)
negamax(rootNode, depth, −∞, +∞, 1)
**/

// HugeNumber is wider than any score an evaluator returns; ±HugeNumber
// is the wide-open search window.
const HugeNumber = int16(32767)

// DefaultParallelMinDepth is the smallest remaining depth at which a
// node hands its siblings to other goroutines. Below it the children are
// close enough to the leaves that spawning costs more than it saves.
const DefaultParallelMinDepth = 2

var (
	ErrNoLegalMoves = errors.New("no legal moves for the side to move")
	ErrBadPlies     = errors.New("plies must be at least 1")
)

// Result is what a solve returns.
type Result struct {
	Move  move.Move
	Eval  Evaluation
	PV    PVLine
	Nodes uint64
	// Root holds every root move with the score it was given. Scores of
	// moves that failed low are upper bounds.
	Root []SearchNode
}

// Solver runs the search. A Solver must not be used by more than one
// Solve call at a time.
type Solver struct {
	evaluator        equity.Evaluator
	threads          int
	parallelMinDepth int

	// workers bounds the goroutines spawned for siblings. The calling
	// goroutine is not counted.
	workers *semaphore.Weighted
	nodes   atomic.Uint64

	logStream io.Writer
	logMu     sync.Mutex
}

// NewSolver returns a solver using the disk-differential evaluator and
// one thread per CPU but one.
func NewSolver() *Solver {
	s := &Solver{}
	s.Init()
	return s
}

// Init sets the solver to its defaults.
func (s *Solver) Init() {
	s.evaluator = equity.DiskDifferential{}
	s.parallelMinDepth = DefaultParallelMinDepth
	s.SetThreads(max(1, runtime.NumCPU()-1))
}

// SetThreads sets how many goroutines may search at once. One thread is
// the single-threaded reference mode: plain sequential alpha-beta.
func (s *Solver) SetThreads(threads int) {
	if threads < 2 {
		s.threads = 1
	} else {
		s.threads = threads
	}
}

func (s *Solver) Threads() int {
	return s.threads
}

func (s *Solver) SetParallelMinDepth(d int) {
	s.parallelMinDepth = max(1, d)
}

func (s *Solver) SetEvaluator(e equity.Evaluator) {
	s.evaluator = e
}

// SetLogStream makes Solve write a YAML record of every root move's
// evaluation to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Nodes returns the number of positions visited by the last (or
// current) solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve searches plies deep and returns the best move for c. Ties go to
// the move that comes first in enumeration order.
func (s *Solver) Solve(ctx context.Context, b board.Board, c board.Color, plies int) (Result, error) {
	if plies < 1 {
		return Result{}, ErrBadPlies
	}
	if s.evaluator == nil {
		s.Init()
	}
	log.Debug().Int("plies", plies).Int("threads", s.threads).
		Str("color", c.String()).Msg("negamax-solve-config")

	s.nodes.Store(0)
	if s.threads > 1 {
		s.workers = semaphore.NewWeighted(int64(s.threads - 1))
	}
	tstart := time.Now()

	var res Result
	g := errgroup.Group{}
	done := make(chan struct{})

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		var err error
		res, err = s.solveRoot(ctx, b, c, plies)
		return err
	})

	err := g.Wait()
	res.Nodes = s.Nodes()
	if err != nil {
		return res, err
	}
	log.Debug().
		Str("move", res.Move.String()).
		Str("eval", res.Eval.String()).
		Uint64("nodes", res.Nodes).
		Str("pv", res.PV.NLBString()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	s.writeLog(c, plies, res)
	return res, nil
}

func (s *Solver) solveRoot(ctx context.Context, b board.Board, c board.Color, plies int) (Result, error) {
	moves := movegen.LegalMoves(b, c)
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}
	children := newSearchNodes(moves)
	pvs := make([]PVLine, len(children))
	bestIdx, bestValue, err := s.searchChildren(ctx, b, c, plies, -HugeNumber, HugeNumber, children, pvs)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Move: children[bestIdx].Move,
		Eval: Evaluated(bestValue),
		Root: children,
	}
	res.PV.Update(res.Move, pvs[bestIdx], bestValue)
	return res, nil
}

// negamax returns the value of b for c, the side to move.
func (s *Solver) negamax(ctx context.Context, b board.Board, c board.Color, depth int, α, β int16, pv *PVLine) (int16, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	moves := movegen.LegalMoves(b, c)
	if depth == 0 || len(moves) == 0 {
		return s.evaluator.Evaluate(b, c), nil
	}
	children := newSearchNodes(moves)
	pvs := make([]PVLine, len(children))
	bestIdx, bestValue, err := s.searchChildren(ctx, b, c, depth, α, β, children, pvs)
	if err != nil {
		return 0, err
	}
	pv.Update(children[bestIdx].Move, pvs[bestIdx], bestValue)
	return bestValue, nil
}

// searchChild plays children[i] on a copy of b and stores its value,
// from c's point of view, in children[i].Eval.
func (s *Solver) searchChild(ctx context.Context, b board.Board, c board.Color, depth int,
	α, β int16, children []SearchNode, pvs []PVLine, i int) error {

	m := children[i].Move
	movegen.FlipDisks(m, &b, c, true)
	b.PlaceOrFlip(m, c)
	s.nodes.Add(1)
	value, err := s.negamax(ctx, b, board.OtherColor(c), depth-1, -β, -α, &pvs[i])
	if err != nil {
		return err
	}
	children[i].Eval = Evaluated(-value)
	return nil
}

// searchChildren scores the children of b and returns the index and
// value of the best one.
func (s *Solver) searchChildren(ctx context.Context, b board.Board, c board.Color, depth int,
	α, β int16, children []SearchNode, pvs []PVLine) (int, int16, error) {

	if s.threads == 1 || depth < s.parallelMinDepth || len(children) == 1 {
		return s.searchSequential(ctx, b, c, depth, α, β, children, pvs)
	}
	return s.searchParallel(ctx, b, c, depth, α, β, children, pvs)
}

func (s *Solver) searchSequential(ctx context.Context, b board.Board, c board.Color, depth int,
	α, β int16, children []SearchNode, pvs []PVLine) (int, int16, error) {

	bestIdx := -1
	bestValue := -HugeNumber
	for i := range children {
		if err := s.searchChild(ctx, b, c, depth, α, β, children, pvs, i); err != nil {
			return 0, 0, err
		}
		if v := children[i].Eval.Value(); bestIdx < 0 || v > bestValue {
			bestIdx = i
			bestValue = v
		}
		α = max(α, bestValue)
		if bestValue >= β {
			break // beta cut-off
		}
	}
	return bestIdx, bestValue, nil
}

// searchParallel searches the first child alone to get a bound, then
// fans the rest out. The siblings all see the same (α, β), captured
// before they start; nothing a running sibling reads is ever written.
// A sibling that finds no free worker runs on this goroutine, and if it
// produces a cut-off no further siblings are started. Siblings already
// running are waited for and their scores kept, but they cannot change
// the outcome: the node's value is already at least β.
func (s *Solver) searchParallel(ctx context.Context, b board.Board, c board.Color, depth int,
	α, β int16, children []SearchNode, pvs []PVLine) (int, int16, error) {

	if err := s.searchChild(ctx, b, c, depth, α, β, children, pvs, 0); err != nil {
		return 0, 0, err
	}
	first := children[0].Eval.Value()
	if first >= β {
		return 0, first, nil
	}
	α = max(α, first)

	g := errgroup.Group{}
	var inlineErr error
	for i := 1; i < len(children); i++ {
		if s.workers.TryAcquire(1) {
			i := i
			g.Go(func() error {
				defer s.workers.Release(1)
				return s.searchChild(ctx, b, c, depth, α, β, children, pvs, i)
			})
			continue
		}
		if inlineErr = s.searchChild(ctx, b, c, depth, α, β, children, pvs, i); inlineErr != nil {
			break
		}
		if children[i].Eval.Value() >= β {
			break // beta cut-off; leave the rest unsearched
		}
	}
	// Join before reading any sibling's result.
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	if inlineErr != nil {
		return 0, 0, inlineErr
	}

	bestIdx := 0
	bestValue := first
	for i := 1; i < len(children); i++ {
		if !children[i].Eval.Valid() {
			continue
		}
		if v := children[i].Eval.Value(); v > bestValue {
			bestIdx = i
			bestValue = v
		}
	}
	return bestIdx, bestValue, nil
}
