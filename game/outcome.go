package game

import (
	"fmt"
	"strings"

	"github.com/domino14/reversi/board"
)

// Outcome is the disk count of a position and who leads it. For a
// finished game this is the result.
type Outcome struct {
	XDisks int
	ODisks int
	Winner board.Color
	Tie    bool
}

func OutcomeOf(b board.Board) Outcome {
	o := Outcome{
		XDisks: b.CountDisks(board.XBlack),
		ODisks: b.CountDisks(board.OWhite),
	}
	switch {
	case o.XDisks == o.ODisks:
		o.Tie = true
	case o.XDisks > o.ODisks:
		o.Winner = board.XBlack
	default:
		o.Winner = board.OWhite
	}
	return o
}

// Spread is X's disks minus O's.
func (o Outcome) Spread() int {
	return o.XDisks - o.ODisks
}

func (o Outcome) String() string {
	var sb strings.Builder
	sb.WriteString("Game over.\n")
	if o.Tie {
		fmt.Fprintf(&sb, "Tie game. Each player has %d disks\n", o.XDisks)
	} else {
		fmt.Fprintf(&sb, "X has %d disks. O has %d disks. %v wins.\n",
			o.XDisks, o.ODisks, o.Winner)
	}
	return sb.String()
}

// Outcome returns the result of the game as it stands.
func (g *Game) Outcome() Outcome {
	return OutcomeOf(g.board)
}
