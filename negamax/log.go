package negamax

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/reversi/board"
)

// LogSolve is one record in the solver's log stream.
type LogSolve struct {
	Color string    `yaml:"color"`
	Plies int       `yaml:"plies"`
	Best  string    `yaml:"best"`
	Value int16     `yaml:"value"`
	Nodes uint64    `yaml:"nodes"`
	PV    []string  `yaml:"pv,flow"`
	Moves []LogMove `yaml:"moves"`
}

// LogMove is a root move and the score it got.
type LogMove struct {
	Move string `yaml:"move"`
	// Value is omitted for moves that were never searched.
	Value *int16 `yaml:"value,omitempty"`
}

func (s *Solver) writeLog(c board.Color, plies int, res Result) {
	if s.logStream == nil {
		return
	}
	entry := LogSolve{
		Color: c.String(),
		Plies: plies,
		Best:  res.Move.String(),
		Value: res.Eval.Value(),
		Nodes: res.Nodes,
	}
	for _, m := range res.PV.Moves {
		entry.PV = append(entry.PV, m.String())
	}
	for _, n := range res.Root {
		lm := LogMove{Move: n.Move.String()}
		if n.Eval.Valid() {
			v := n.Eval.Value()
			lm.Value = &v
		}
		entry.Moves = append(entry.Moves, lm)
	}
	out, err := yaml.Marshal([]LogSolve{entry})
	if err != nil {
		log.Error().Err(err).Msg("marshalling solve log")
		return
	}
	s.logMu.Lock()
	defer s.logMu.Unlock()
	if _, err := s.logStream.Write(out); err != nil {
		log.Error().Err(err).Msg("writing solve log")
	}
}
