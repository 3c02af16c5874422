// Package equity scores Reversi positions statically.
package equity

import "github.com/domino14/reversi/board"

// Evaluator gives a static score for a position, from the point of view
// of color c. Higher is better for c.
type Evaluator interface {
	Evaluate(b board.Board, c board.Color) int16
}

// MaxScore bounds the absolute value any Evaluator in this package returns.
const MaxScore = int16(64)
