// Command reversi plays one game between two computer players and prints
// it as it goes. Usage: reversi [flags] <depth for X> <depth for O>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/negamax"
	"github.com/domino14/reversi/turnplayer"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	depthX, depthO, err := cfg.DepthsFromArgs()
	if err != nil {
		log.Fatal().Err(err).Msg("usage: reversi <depth for X> <depth for O>")
	}

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	var solveLog *os.File
	if fn := cfg.GetString(config.ConfigSolveLogFile); fn != "" {
		solveLog, err = os.Create(fn)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create solve log")
		}
		defer solveLog.Close()
	}

	var players [2]turnplayer.Player
	depths := [2]int{board.XBlack: depthX, board.OWhite: depthO}
	for c, depth := range depths {
		s := negamax.NewSolver()
		s.SetThreads(cfg.GetInt(config.ConfigThreads))
		s.SetParallelMinDepth(cfg.GetInt(config.ConfigParallelMinDepth))
		if solveLog != nil {
			s.SetLogStream(solveLog)
		}
		players[c] = turnplayer.NewNegamaxPlayerWithSolver(s, depth)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g := game.NewGame(players)
	fmt.Println(g.Board().ToDisplayText())
	err = g.PlayToEnd(ctx, func(res turnplayer.TurnResult) {
		fmt.Println(res)
		if !res.Passed {
			fmt.Println(g.Board().ToDisplayText())
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("game-aborted")
		return
	}
	fmt.Print(g.Outcome())
}
