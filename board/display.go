package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/reversi/move"
)

var (
	ErrBadDisplayText = errors.New("could not parse board text")
	ErrOverlap        = errors.New("a square holds disks of both colors")
)

// diskRunes is indexed by x + o<<1. 'I' should never show up, it marks a
// square claimed by both colors.
var diskRunes = [4]byte{'.', 'X', 'O', 'I'}

const displayHeader = "  1 2 3 4 5 6 7 8"

// ToDisplayText renders the board with row 1 on top and column 1 on the
// left.
func (b Board) ToDisplayText() string {
	return renderMasks(b.disks[XBlack], b.disks[OWhite])
}

// MaskToDisplayText renders a single mask, using c's rune for set squares.
// It is handy for showing a set of legal moves.
func MaskToDisplayText(mask uint64, c Color) string {
	if c == XBlack {
		return renderMasks(mask, 0)
	}
	return renderMasks(0, mask)
}

func renderMasks(x, o uint64) string {
	var sb strings.Builder
	sb.WriteString(displayHeader)
	sb.WriteString("\n")
	for row := 1; row <= move.BoardDim; row++ {
		fmt.Fprintf(&sb, "%d", row)
		shift := (move.BoardDim - row) * move.BoardDim
		xrow, orow := (x>>shift)&Row8, (o>>shift)&Row8
		for col := 1; col <= move.BoardDim; col++ {
			bit := uint64(1) << (move.BoardDim - col)
			idx := 0
			if xrow&bit != 0 {
				idx |= 1
			}
			if orow&bit != 0 {
				idx |= 2
			}
			sb.WriteByte(' ')
			sb.WriteByte(diskRunes[idx])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FromDisplayText parses the format written by ToDisplayText. The header
// line is optional, and blank lines are ignored.
func FromDisplayText(text string) (Board, error) {
	var b Board
	row := 0
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if strings.Join(fields, " ") == strings.TrimSpace(displayHeader) {
			continue
		}
		row++
		if row > move.BoardDim {
			return Board{}, fmt.Errorf("%w: too many rows", ErrBadDisplayText)
		}
		if fields[0] != fmt.Sprint(row) {
			return Board{}, fmt.Errorf("%w: expected row %d, got %q",
				ErrBadDisplayText, row, fields[0])
		}
		cells := fields[1:]
		if len(cells) != move.BoardDim {
			return Board{}, fmt.Errorf("%w: row %d has %d squares",
				ErrBadDisplayText, row, len(cells))
		}
		for i, cell := range cells {
			m := move.New(row, i+1)
			switch cell {
			case ".":
			case "X", "x":
				b.disks[XBlack] |= m.Bit()
			case "O", "o":
				b.disks[OWhite] |= m.Bit()
			default:
				return Board{}, fmt.Errorf("%w: bad square %q at %v",
					ErrBadDisplayText, cell, m)
			}
		}
	}
	if row != move.BoardDim {
		return Board{}, fmt.Errorf("%w: expected %d rows, got %d",
			ErrBadDisplayText, move.BoardDim, row)
	}
	if !b.Valid() {
		return Board{}, ErrOverlap
	}
	return b, nil
}
