// Package movegen finds legal Reversi moves and applies them. The flip
// engine walks rays one square at a time; the enumerator uses whole-mask
// shifts to narrow the candidate squares first.
package movegen

import (
	"errors"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

var (
	ErrOffBoard = errors.New("illegal move: row and column must both be between 1 and 8")
	ErrOccupied = errors.New("illegal move: board position already occupied")
	ErrNoFlips  = errors.New("illegal move: no disks flipped")
)

// walkRay returns 0 if no capture is possible from m along dir, and
// 1 + the number of captured disks otherwise.
func walkRay(m, dir move.Move, b *board.Board, c board.Color, apply bool) int {
	next := m.Add(dir)
	if next.OffBoard() {
		return 0
	}
	bit := next.Bit()
	switch {
	case b.Disks(board.OtherColor(c))&bit != 0:
		n := walkRay(next, dir, b, c, apply)
		if n == 0 {
			return 0
		}
		if apply {
			b.PlaceOrFlip(next, c)
		}
		return n + 1
	case b.Disks(c)&bit != 0:
		return 1
	}
	return 0
}

// TryFlips returns how many opponent disks a disk of color c placed at m
// would capture along dir. With apply set, those disks are flipped. A
// run of opponent disks only counts when an own disk ends it; running
// into an empty square or the edge captures nothing.
func TryFlips(m, dir move.Move, b *board.Board, c board.Color, apply bool) int {
	n := walkRay(m, dir, b, c, apply)
	if n == 0 {
		return 0
	}
	return n - 1
}

// FlipDisks sums TryFlips over all eight directions. It does not look at
// whether m itself is empty; see ValidateMove for the full legality test.
func FlipDisks(m move.Move, b *board.Board, c board.Color, apply bool) int {
	nflips := 0
	for _, dir := range move.Directions {
		nflips += TryFlips(m, dir, b, c, apply)
	}
	return nflips
}

// ValidateMove checks whether color c may play m on b.
func ValidateMove(b board.Board, c board.Color, m move.Move) error {
	if m.OffBoard() {
		return ErrOffBoard
	}
	if !b.Empty(m) {
		return ErrOccupied
	}
	if FlipDisks(m, &b, c, false) == 0 {
		return ErrNoFlips
	}
	return nil
}

// ApplyMove plays m for color c: it flips every captured disk and then
// places the new one. It returns the number of disks flipped. On error
// the board is left untouched.
func ApplyMove(b *board.Board, c board.Color, m move.Move) (int, error) {
	if err := ValidateMove(*b, c, m); err != nil {
		return 0, err
	}
	nflips := FlipDisks(m, b, c, true)
	b.PlaceOrFlip(m, c)
	return nflips, nil
}
