package negamax

import (
	"strconv"

	"github.com/domino14/reversi/move"
)

// Evaluation is a score that may not have been computed yet. Children
// that were pruned before being searched keep the zero Evaluation.
type Evaluation struct {
	value int16
	valid bool
}

// Evaluated wraps a computed score.
func Evaluated(v int16) Evaluation {
	return Evaluation{value: v, valid: true}
}

// Value returns the score. It is meaningless unless Valid is true.
func (e Evaluation) Value() int16 {
	return e.value
}

// Valid reports whether the score was computed.
func (e Evaluation) Valid() bool {
	return e.valid
}

func (e Evaluation) String() string {
	if !e.valid {
		return "n/a"
	}
	return strconv.Itoa(int(e.value))
}

// SearchNode is one candidate move at a level of the search tree.
type SearchNode struct {
	Move move.Move
	Eval Evaluation
}

func newSearchNodes(moves []move.Move) []SearchNode {
	nodes := make([]SearchNode, len(moves))
	for i, m := range moves {
		nodes[i].Move = m
	}
	return nodes
}
