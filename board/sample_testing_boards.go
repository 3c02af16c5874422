package board

// Positions used across the test suites.
const (
	// XMustPass: X has no legal move, O can play 1,3.
	XMustPass = `
  1 2 3 4 5 6 7 8
1 O X . . . . . .
2 . . . . . . . .
3 . . . . . . . .
4 . . . . . . . .
5 . . . . . . . .
6 . . . . . . . .
7 . . . . . . . .
8 . . . . . . . .
`
	// NobodyMoves: O has no disks, so neither color can move.
	NobodyMoves = `
  1 2 3 4 5 6 7 8
1 . . . . . . . .
2 . . . . . . . .
3 . . . . . . . .
4 . . . X . . . .
5 . . . . . . . .
6 . . . . . . . .
7 . . . . . . . .
8 . . . . . . . .
`
	// OpenRay: X playing 4,3 touches O but the run ends at an empty
	// square, so nothing flips.
	OpenRay = `
  1 2 3 4 5 6 7 8
1 . . . . . . . .
2 . . . . . . . .
3 . . . . . . . .
4 . . . O . . . .
5 . . . . . . . .
6 . . . . . . . .
7 . . . . . . . .
8 . . . . . . . X
`
	// EdgeRun: O's run in row 2 reaches the edge, so X at 2,3 flips
	// nothing. X at 1,5 and at 4,6 each capture two.
	EdgeRun = `
  1 2 3 4 5 6 7 8
1 . . X . . . . .
2 . . . O O O O O
3 . . . . O . . .
4 . . . . X . . .
5 . . . . . . . .
6 . . . . . . . .
7 . . . . . . . .
8 . . . . . . . .
`
	// MultiRay: X at 4,4 captures eight disks along seven rays.
	MultiRay = `
  1 2 3 4 5 6 7 8
1 . . . . . . . .
2 . X . X . X . .
3 . . O O O . . .
4 . X O . O O X .
5 . . O O . . . .
6 . X . X . . . .
7 . . . . . . . .
8 . . . . . . . .
`
)

// MustFromDisplayText parses text and panics on failure. Only meant for
// fixed test positions.
func MustFromDisplayText(text string) Board {
	b, err := FromDisplayText(text)
	if err != nil {
		panic(err)
	}
	return b
}
