package automatic

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/stats"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDepthBlack, 2)
	cfg.Set(config.ConfigDepthWhite, 1)
	cfg.Set(config.ConfigThreads, 2)
	return cfg
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 200)
	r, err := NewGameRunner(logchan, testConfig())
	is.NoErr(err)
	is.Equal(r.Players()[0].Name(), "negamax-2")
	is.Equal(r.Players()[1].Name(), "negamax-1")

	done := make(chan int)
	go func() {
		n := 0
		for range logchan {
			n++
		}
		done <- n
	}()
	rec, err := r.PlayGame(context.Background())
	close(logchan)
	is.NoErr(err)
	is.Equal(<-done, rec.Turns)
	is.True(!r.Game().Playing())
	is.Equal(rec.Outcome.XDisks+rec.Outcome.ODisks, 4+len(rec.Moves))
	is.Equal(len(rec.ID), 16)
}

func TestRandomOpenings(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigRandomOpeningPlies, 4)
	r, err := NewGameRunner(nil, cfg)
	is.NoErr(err)
	is.NoErr(r.Init(RandomPlayer, NegamaxPlayer))
	is.Equal(r.Players()[0].Name(), "random")

	rec, err := r.PlayGame(context.Background())
	is.NoErr(err)
	is.True(len(rec.Moves) >= 4)
}

func TestInitErrors(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(nil, testConfig())
	is.NoErr(err)
	is.True(r.Init("greedy", NegamaxPlayer) != nil)

	cfg := testConfig()
	cfg.Set(config.ConfigDepthWhite, 0)
	_, err = NewGameRunner(nil, cfg)
	is.True(err != nil)
}

func TestSummary(t *testing.T) {
	is := is.New(t)
	s := NewSummary()
	moves := []move.Move{move.New(3, 4), move.New(3, 3)}
	s.Add(GameRecord{Moves: moves, Outcome: game.Outcome{XDisks: 40, ODisks: 24, Winner: board.XBlack}})
	s.Add(GameRecord{Moves: moves, Outcome: game.Outcome{XDisks: 40, ODisks: 24, Winner: board.XBlack}})
	s.Add(GameRecord{Moves: moves[:1], Outcome: game.Outcome{XDisks: 20, ODisks: 44, Winner: board.OWhite}})
	s.Add(GameRecord{Moves: nil, Outcome: game.Outcome{XDisks: 32, ODisks: 32, Tie: true}})

	is.Equal(s.Games, 4)
	is.Equal(s.XWins, 2)
	is.Equal(s.OWins, 1)
	is.Equal(s.Ties, 1)
	is.Equal(s.UniqueGames(), 3)
	is.Equal(s.XScore(), 0.625)
	is.True(stats.FuzzyEqual(s.Spread.Mean(), 2.0))
	is.True(strings.Contains(s.String(), "X wins: 2  O wins: 1  Ties: 1"))
}

func TestStartCompVCompGames(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigRandomOpeningPlies, 2)
	dir := t.TempDir()
	cfg.Set(config.ConfigSolveLogFile, filepath.Join(dir, "solve.yaml"))
	out := filepath.Join(dir, "games.csv")

	summary, err := StartCompVCompGames(context.Background(), cfg, 6, 3, out)
	is.NoErr(err)
	is.Equal(summary.Games, 6)
	is.Equal(summary.XWins+summary.OWins+summary.Ties, 6)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	f, err := os.Open(out)
	is.NoErr(err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	is.NoErr(err)
	is.Equal(strings.Join(records[0], ",")+"\n", logHeader)
	for _, rec := range records[1:] {
		is.Equal(len(rec), 11)
	}
	is.True(len(records) > 6*4)

	st, err := os.Stat(filepath.Join(dir, "solve.yaml"))
	is.NoErr(err)
	is.True(st.Size() > 0)
}

func TestStartCompVCompGamesCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := StartCompVCompGames(ctx, testConfig(), 50, 2,
		filepath.Join(t.TempDir(), "games.csv"))
	is.True(err != nil)
	is.True(summary.Games < 50)
}

func TestStartCompVCompGamesAlreadyPlaying(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	// Hold the guard the way a running batch does.
	is.True(running.CompareAndSwap(false, true))
	_, err := StartCompVCompGames(context.Background(), cfg, 1, 1,
		filepath.Join(t.TempDir(), "games.csv"))
	is.True(err == ErrAlreadyPlaying)
	running.Store(false)

	summary, err := StartCompVCompGames(context.Background(), cfg, 1, 1,
		filepath.Join(t.TempDir(), "games.csv"))
	is.NoErr(err)
	is.Equal(summary.Games, 1)
}
