package game

import (
	"context"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/turnplayer"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g := NewGame([2]turnplayer.Player{})
	is.Equal(g.Board(), board.StartingBoard())
	is.Equal(g.PlayerOnTurn(), board.XBlack)
	is.True(g.Playing())
	is.Equal(g.Turn(), 0)
}

func TestPlayHumanMove(t *testing.T) {
	is := is.New(t)
	g := NewGame([2]turnplayer.Player{})

	_, err := g.PlayHumanMove(move.New(1, 1))
	is.True(err == movegen.ErrNoFlips)
	_, err = g.PlayHumanMove(move.New(4, 4))
	is.True(err == movegen.ErrOccupied)
	_, err = g.PlayHumanMove(move.New(0, 4))
	is.True(err == movegen.ErrOffBoard)
	is.Equal(g.Board(), board.StartingBoard())
	is.Equal(g.PlayerOnTurn(), board.XBlack)
	is.Equal(g.Turn(), 0)

	res, err := g.PlayHumanMove(move.New(3, 4))
	is.NoErr(err)
	is.Equal(res.Flips, 1)
	is.Equal(g.PlayerOnTurn(), board.OWhite)
	is.Equal(g.Board().CountDisks(board.XBlack), 4)
	is.Equal(g.Board().CountDisks(board.OWhite), 1)
	is.Equal(g.Moves(), []move.Move{move.New(3, 4)})
}

func TestPassAndEnd(t *testing.T) {
	is := is.New(t)
	g := NewGameFromBoard(board.MustFromDisplayText(board.XMustPass), board.XBlack,
		[2]turnplayer.Player{})

	_, err := g.PlayHumanMove(move.New(1, 3))
	is.True(err == ErrMustPass)

	// No player for X, but X cannot move anyway.
	res, err := g.PlayTurn(context.Background())
	is.NoErr(err)
	is.True(res.Passed)
	is.Equal(g.PlayerOnTurn(), board.OWhite)

	// O can move, so it needs a player.
	_, err = g.PlayTurn(context.Background())
	is.True(err != nil)
	_, err = g.Pass()
	is.True(err == ErrNotPassed)

	res, err = g.PlayHumanMove(move.New(1, 3))
	is.NoErr(err)
	is.Equal(res.Flips, 1)
	is.True(g.Playing())

	// X has no disks left; both sides pass and the game ends.
	_, err = g.Pass()
	is.NoErr(err)
	is.True(g.Playing())
	_, err = g.Pass()
	is.NoErr(err)
	is.True(!g.Playing())

	_, err = g.PlayTurn(context.Background())
	is.True(err == ErrGameOver)

	o := g.Outcome()
	is.Equal(o.XDisks, 0)
	is.Equal(o.ODisks, 3)
	is.Equal(o.Winner, board.OWhite)
	is.Equal(o.String(), "Game over.\nX has 0 disks. O has 3 disks. O wins.\n")
	is.Equal(len(g.History()), 4)
}

func TestNobodyMoves(t *testing.T) {
	is := is.New(t)
	players := [2]turnplayer.Player{
		turnplayer.NewNegamaxPlayer(2, 1), turnplayer.NewNegamaxPlayer(2, 1)}
	g := NewGameFromBoard(board.MustFromDisplayText(board.NobodyMoves), board.XBlack, players)
	turns := 0
	err := g.PlayToEnd(context.Background(), func(r turnplayer.TurnResult) {
		is.True(r.Passed)
		turns++
	})
	is.NoErr(err)
	is.Equal(turns, 2)
	is.Equal(g.Outcome().Winner, board.XBlack)
	is.Equal(g.Outcome().Spread(), 1)
}

func TestTieString(t *testing.T) {
	is := is.New(t)
	o := OutcomeOf(board.StartingBoard())
	is.True(o.Tie)
	is.Equal(o.String(), "Game over.\nTie game. Each player has 2 disks\n")
}

func TestComputerGameTerminates(t *testing.T) {
	is := is.New(t)
	players := [2]turnplayer.Player{
		turnplayer.NewNegamaxPlayer(3, 4), turnplayer.NewNegamaxPlayer(1, 1)}
	g := NewGame(players)
	err := g.PlayToEnd(context.Background(), nil)
	is.NoErr(err)
	is.True(!g.Playing())

	b := g.Board()
	is.True(b.Valid())
	is.True(!movegen.HasLegalMove(b, board.XBlack))
	is.True(!movegen.HasLegalMove(b, board.OWhite))

	// Every move adds exactly one disk.
	is.Equal(b.TotalDisks(), 4+len(g.Moves()))
	h := g.History()
	is.True(h[len(h)-1].Passed)
	is.True(h[len(h)-2].Passed)

	o := g.Outcome()
	is.Equal(o.XDisks+o.ODisks, b.TotalDisks())
}

func TestComputerGameIsDeterministic(t *testing.T) {
	is := is.New(t)
	play := func(threads int) []move.Move {
		g := NewGame([2]turnplayer.Player{
			turnplayer.NewNegamaxPlayer(2, threads), turnplayer.NewNegamaxPlayer(3, threads)})
		is.NoErr(g.PlayToEnd(context.Background(), nil))
		return g.Moves()
	}
	is.Equal(play(1), play(4))
}
