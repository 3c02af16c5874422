// Package board holds the bitboard representation of a Reversi position.
package board

import (
	"math/bits"

	"github.com/domino14/reversi/move"
)

// Color is the color of a disk, and of the player who owns it.
type Color int

const (
	XBlack Color = 0
	OWhite Color = 1
)

// OtherColor returns the opponent of c.
func OtherColor(c Color) Color {
	return 1 - c
}

// Opponent returns the opponent of c.
func (c Color) Opponent() Color {
	return OtherColor(c)
}

func (c Color) String() string {
	if c == XBlack {
		return "X"
	}
	return "O"
}

const (
	// Row8 is every square in row 8.
	Row8 uint64 = 0x00000000000000ff
	// Col8 is every square in column 8.
	Col8 uint64 = 0x0101010101010101
	// Col1 is every square in column 1.
	Col1 uint64 = Col8 << 7
)

// Board is a pair of disjoint bit masks, one per color. It is a plain
// value: assigning a Board copies it, so searches can hand independent
// boards to concurrent workers.
type Board struct {
	disks [2]uint64
}

// StartingBoard returns the standard opening position.
func StartingBoard() Board {
	return Board{disks: [2]uint64{
		move.New(4, 5).Bit() | move.New(5, 4).Bit(),
		move.New(4, 4).Bit() | move.New(5, 5).Bit(),
	}}
}

// FromMasks builds a board directly from the two color masks.
func FromMasks(x, o uint64) Board {
	return Board{disks: [2]uint64{x, o}}
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() Board {
	return *b
}

// PlaceOrFlip puts a disk of color c on m, replacing an opponent disk
// if one is there.
func (b *Board) PlaceOrFlip(m move.Move, c Color) {
	bit := m.Bit()
	b.disks[c] |= bit
	b.disks[OtherColor(c)] &^= bit
}

// CountDisks returns how many disks of color c are on the board.
func (b Board) CountDisks(c Color) int {
	return bits.OnesCount64(b.disks[c])
}

// Disks returns the mask for color c.
func (b Board) Disks(c Color) uint64 {
	return b.disks[c]
}

// Occupied returns the mask of every square holding a disk.
func (b Board) Occupied() uint64 {
	return b.disks[XBlack] | b.disks[OWhite]
}

// Empty returns true if m holds no disk.
func (b Board) Empty(m move.Move) bool {
	return b.Occupied()&m.Bit() == 0
}

// At returns the color of the disk on m. ok is false for an empty square.
func (b Board) At(m move.Move) (c Color, ok bool) {
	bit := m.Bit()
	switch {
	case b.disks[XBlack]&bit != 0:
		return XBlack, true
	case b.disks[OWhite]&bit != 0:
		return OWhite, true
	}
	return XBlack, false
}

// TotalDisks is the number of disks of either color.
func (b Board) TotalDisks() int {
	return bits.OnesCount64(b.Occupied())
}

// Valid reports whether the two masks are disjoint.
func (b Board) Valid() bool {
	return b.disks[XBlack]&b.disks[OWhite] == 0
}

// Squares returns the squares set in mask, row 1 to 8 and column 1 to 8
// within a row.
func Squares(mask uint64) []move.Move {
	squares := make([]move.Move, 0, bits.OnesCount64(mask))
	for mask != 0 {
		idx := 63 - bits.LeadingZeros64(mask)
		squares = append(squares, move.FromBitIndex(idx))
		mask &^= uint64(1) << idx
	}
	return squares
}
