package automatic

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/stats"
)

const confidence = 95

// Summary aggregates finished games. Spreads are X's disks minus O's.
type Summary struct {
	Games int
	XWins int
	OWins int
	Ties  int

	Spread  stats.Statistic
	spreads []float64
	// hashes of the move sequences seen, to count distinct games.
	hashes map[uint64]struct{}
}

func NewSummary() *Summary {
	return &Summary{hashes: map[uint64]struct{}{}}
}

func gameHash(moves []move.Move) uint64 {
	return xxhash.Sum64String(strings.Join(
		lo.Map(moves, func(m move.Move, _ int) string { return m.String() }), " "))
}

func (s *Summary) Add(rec GameRecord) {
	s.Games++
	switch {
	case rec.Outcome.Tie:
		s.Ties++
	case rec.Outcome.Winner == board.XBlack:
		s.XWins++
	default:
		s.OWins++
	}
	spread := rec.Outcome.Spread()
	s.Spread.PushInt(spread)
	s.spreads = append(s.spreads, float64(spread))
	s.hashes[gameHash(rec.Moves)] = struct{}{}
}

// UniqueGames is the number of distinct move sequences played.
func (s *Summary) UniqueGames() int {
	return len(s.hashes)
}

// XScore is X's score as a fraction: a win counts 1, a tie one half.
func (s *Summary) XScore() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.XWins) + float64(s.Ties)/2) / float64(s.Games)
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d (%d unique)\n", s.Games, s.UniqueGames())
	if s.Games == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "X wins: %d  O wins: %d  Ties: %d  X score: %.1f%%\n",
		s.XWins, s.OWins, s.Ties, 100*s.XScore())
	low, high := s.Spread.ConfidenceInterval(confidence)
	fmt.Fprintf(&sb, "Spread (X-O): mean %.2f, stdev %.2f, %d%% CI [%.2f, %.2f]\n",
		s.Spread.Mean(), s.Spread.Stdev(), confidence, low, high)
	fmt.Fprintf(&sb, "P(X ahead on average): %.3f\n",
		stats.WinProbability(s.Spread.Mean(), s.Spread.StandardError()))
	sb.WriteString("Spread histogram:\n")
	stats.FprintHistogram(&sb, s.spreads)
	return sb.String()
}
