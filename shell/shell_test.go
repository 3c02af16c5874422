package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/movegen"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"file": "/path/to/log.txt"}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"aiplay -plies 5 -threads 2 ",
			&shellcmd{"aiplay", nil, CmdOptions{"plies": "5", "threads": "2"}},
			nil,
		},
		{`load "my board.txt" -turn o`,
			&shellcmd{"load", []string{"my board.txt"}, CmdOptions{"turn": "o"}},
			nil,
		},
		{"aiplay -plies",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController() (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigThreads, 2)
	return newController(cfg, &buf), &buf
}

func run(sc *ShellController, line string) (*Response, error) {
	return sc.standardModeSwitch(line, make(chan os.Signal, 1))
}

func TestPlayAndShow(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()

	_, err := run(sc, "play 1,1")
	is.True(err == movegen.ErrNoFlips)
	_, err = run(sc, "play 9,1")
	is.True(err == movegen.ErrOffBoard)
	_, err = run(sc, "play four")
	is.True(err != nil)

	resp, err := run(sc, "play 3,4")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "X (human) plays 3,4, flipping 1"))
	is.Equal(sc.game.PlayerOnTurn(), board.OWhite)

	resp, err = run(sc, "show")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "X: 4  O: 1"))
	is.True(strings.Contains(resp.message, "O to move (turn 2)"))
}

func TestGen(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	resp, err := run(sc, "gen")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "4 legal moves for X: 3,4 (1)  4,3 (1)  5,6 (1)  6,5 (1)"))
}

func TestAIPlay(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	resp, err := run(sc, "aiplay -plies 3")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "X (negamax-3) plays"))
	is.Equal(sc.game.Turn(), 1)
	// The computer only moves when asked.
	is.True(sc.game.Player(board.XBlack) == nil)

	_, err = run(sc, "aiplay -plies x")
	is.True(err != nil)
}

func TestLoadAndPass(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	path := filepath.Join(t.TempDir(), "pos.txt")
	is.NoErr(os.WriteFile(path, []byte(board.XMustPass), 0o644))

	resp, err := run(sc, "load "+path)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "X to move"))

	resp, err = run(sc, "gen")
	is.NoErr(err)
	is.Equal(resp.message, "X has no legal moves and must pass")

	_, err = run(sc, "pass")
	is.NoErr(err)
	_, err = run(sc, "pass")
	is.True(err != nil) // O can move

	resp, err = run(sc, "aiplay -plies 1")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "plays 1,3"))

	_, err = run(sc, "pass")
	is.NoErr(err)
	resp, err = run(sc, "pass")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "X has 0 disks. O has 3 disks. O wins."))

	_, err = run(sc, "load "+path+" -turn z")
	is.True(err != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	resp, err := run(sc, "set depth-white 6")
	is.NoErr(err)
	is.Equal(resp.message, "set depth-white to 6")
	is.Equal(sc.config.GetInt(config.ConfigDepthWhite), 6)

	resp, err = run(sc, "set depth-white")
	is.NoErr(err)
	is.Equal(resp.message, "depth-white: 6")

	_, err = run(sc, "set depth-white 0")
	is.True(err != nil)
	_, err = run(sc, "set lexicon NWL20")
	is.True(err != nil)

	resp, err = run(sc, "set")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "depth-white"))
}

func TestHelpAndUnknown(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestController()
	_, err := run(sc, "help")
	is.NoErr(err)
	is.True(strings.Contains(buf.String(), "aiplay [-plies n]"))

	buf.Reset()
	_, err = run(sc, "help nothing")
	is.NoErr(err)
	is.Equal(buf.String(), "There is no help text for the topic nothing\n")

	_, err = run(sc, "endgame")
	is.True(err != nil)
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestController()
	sc.config.Set(config.ConfigDepthBlack, 1)
	sc.config.Set(config.ConfigDepthWhite, 1)
	out := filepath.Join(t.TempDir(), "games.csv")

	_, err := run(sc, "autoplay stop")
	is.True(err != nil)

	resp, err := run(sc, "autoplay -games 3 -threads 2 -file "+out)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "playing 3 games on 2 threads"))
	_, err = run(sc, "play 3,4")
	is.True(err == errAutoplayRunning || err == nil)

	sc.Cleanup()
	is.True(!sc.autoplayRunning())
	is.True(strings.Contains(buf.String(), "Games played:"))
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	c := NewShellCompleter(sc)

	matches, n := c.Do([]rune("aip"), 3)
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("lay")})

	line := []rune("play ")
	matches, n = c.Do(line, len(line))
	is.Equal(n, 0)
	is.Equal(len(matches), 4)

	line = []rune("aiplay -t")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("hreads")})
}
