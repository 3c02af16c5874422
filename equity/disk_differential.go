package equity

import "github.com/domino14/reversi/board"

// DiskDifferential is c's disk count minus the opponent's. There is no
// positional or mobility term.
type DiskDifferential struct{}

func (DiskDifferential) Evaluate(b board.Board, c board.Color) int16 {
	return Score(b, c)
}

// Score is the disk differential for c.
func Score(b board.Board, c board.Color) int16 {
	return int16(b.CountDisks(c) - b.CountDisks(board.OtherColor(c)))
}
