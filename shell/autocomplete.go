package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
)

// ShellCompleter completes command names, options and, for play, the
// legal moves in the current position.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"aiplay": {
		Options: []string{"-plies", "-threads"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-file"},
		Args:    []string{"stop", "status"},
	},
	"load": {
		Options: []string{"-turn"},
	},
	"set": {
		Args: settable,
	},
	"help": {
		Args: []string{"play", "aiplay", "autoplay", "load", "set"},
	},
}

var commandNames = []string{
	"help", "new", "show", "gen", "play", "pass", "aiplay", "autoplay",
	"load", "set", "exit",
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-turn":
			completions = []string{"x", "o"}
		case lastCompleteField == "debug":
			completions = []string{"true", "false"}
		case cmdName == "play":
			completions = c.legalMoves()
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

func (c *ShellCompleter) legalMoves() []string {
	g := c.sc.game
	if g == nil || !g.Playing() {
		return nil
	}
	mask, _ := movegen.EnumerateLegalMoves(g.Board(), g.PlayerOnTurn())
	return lo.Map(board.Squares(mask), func(m move.Move, _ int) string { return m.String() })
}
