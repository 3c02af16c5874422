package movegen

import (
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

// NeighborCandidates returns every empty square next to one of the
// opponent's disks. This is a superset of c's legal moves.
func NeighborCandidates(b board.Board, c board.Color) uint64 {
	opp := b.Disks(board.OtherColor(c))
	var neighbors uint64
	for _, dir := range move.Directions {
		// Shifts that move a disk sideways wrap from one edge column to
		// the other; mask out the column they land on.
		var colmask uint64
		switch {
		case dir.Col > 0:
			colmask = board.Col1
		case dir.Col < 0:
			colmask = board.Col8
		}
		offset := dir.BitOffset()
		if offset > 0 {
			neighbors |= (opp >> offset) &^ colmask
		} else {
			neighbors |= (opp << -offset) &^ colmask
		}
	}
	return neighbors &^ b.Occupied()
}

// EnumerateLegalMoves returns the mask of c's legal moves and how many
// there are.
func EnumerateLegalMoves(b board.Board, c board.Color) (uint64, int) {
	var legal uint64
	n := 0
	for _, m := range board.Squares(NeighborCandidates(b, c)) {
		if FlipDisks(m, &b, c, false) > 0 {
			legal |= m.Bit()
			n++
		}
	}
	return legal, n
}

// LegalMoves returns c's legal moves, row by row and left to right
// within a row. Searches expand children in this order.
func LegalMoves(b board.Board, c board.Color) []move.Move {
	legal, _ := EnumerateLegalMoves(b, c)
	return board.Squares(legal)
}

// HasLegalMove is true if c can move at all.
func HasLegalMove(b board.Board, c board.Color) bool {
	for _, m := range board.Squares(NeighborCandidates(b, c)) {
		if FlipDisks(m, &b, c, false) > 0 {
			return true
		}
	}
	return false
}
