package move

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BoardDim is the number of rows and columns on the board.
const BoardDim = 8

var (
	ErrBadMoveFormat = errors.New("moves must look like row,col")
)

// Move is a square on the board, addressed by row and column (both 1..8
// when on the board). The same type doubles as a direction offset, where
// each component is -1, 0 or 1.
type Move struct {
	Row int
	Col int
}

// Directions lists the eight ray offsets, in the order they are searched.
var Directions = [8]Move{
	{0, 1},   // right
	{0, -1},  // left
	{-1, 0},  // up
	{1, 0},   // down
	{-1, -1}, // up-left
	{-1, 1},  // up-right
	{1, 1},   // down-right
	{1, -1},  // down-left
}

// New creates a move at row, col.
func New(row, col int) Move {
	return Move{Row: row, Col: col}
}

// OffBoard returns true if either coordinate is outside 1..8.
func (m Move) OffBoard() bool {
	return m.Row < 1 || m.Row > BoardDim || m.Col < 1 || m.Col > BoardDim
}

// Add steps m by the given direction offset.
func (m Move) Add(dir Move) Move {
	return Move{Row: m.Row + dir.Row, Col: m.Col + dir.Col}
}

// BitIndex maps an on-board square to its bit position. Row 1, column 1
// is the most significant bit; row 8, column 8 is bit 0.
func (m Move) BitIndex() int {
	return (BoardDim-m.Row)*BoardDim + (BoardDim - m.Col)
}

// Bit returns the single-bit mask for m. m must be on the board.
func (m Move) Bit() uint64 {
	return uint64(1) << m.BitIndex()
}

// BitOffset is the signed bit shift that corresponds to a direction
// offset.
func (m Move) BitOffset() int {
	return m.Row*BoardDim + m.Col
}

// FromBitIndex is the inverse of BitIndex.
func FromBitIndex(idx int) Move {
	return Move{Row: BoardDim - idx/BoardDim, Col: BoardDim - idx%BoardDim}
}

func (m Move) String() string {
	return fmt.Sprintf("%d,%d", m.Row, m.Col)
}

// Parse reads a move in the "row,col" format the players type in. It does
// not check that the move is on the board.
func Parse(s string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Move{}, ErrBadMoveFormat
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrBadMoveFormat, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrBadMoveFormat, err)
	}
	return Move{Row: row, Col: col}, nil
}
