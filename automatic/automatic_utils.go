package automatic

// Data collection for automatic games: many computer vs computer games,
// played a few at a time.

import (
	"context"
	"errors"
	"expvar"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

// running is held for the whole of a StartCompVCompGames call.
var running atomic.Bool

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const logHeader = "gameID,turn,color,player,move,flips,eval,nodes,elapsedms,xdisks,odisks\n"

type Job struct{}

// StartCompVCompGames plays numGames games on threads goroutines and
// returns once they are all done, or ctx is cancelled. Every turn is
// written to outputFilename as CSV. If the config names a solve log file,
// the searches are logged there as well.
func StartCompVCompGames(ctx context.Context, cfg *config.Config,
	numGames int, threads int, outputFilename string) (*Summary, error) {

	if !running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer running.Store(false)
	threads = max(1, threads)

	var solveLog *lockedWriter
	if fn := cfg.GetString(config.ConfigSolveLogFile); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		solveLog = &lockedWriter{w: f}
	}

	logChan := make(chan string, 100)
	runners := make([]*GameRunner, threads)
	for i := range runners {
		r, err := NewGameRunner(logChan, cfg)
		if err != nil {
			return nil, err
		}
		if solveLog != nil {
			r.SetSolveLog(solveLog)
			if err := r.Init(NegamaxPlayer, NegamaxPlayer); err != nil {
				return nil, err
			}
		}
		runners[i] = r
	}

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan Job, 100)
	results := make(chan GameRecord, 100)
	var wg sync.WaitGroup
	wg.Add(threads)

	var errMu sync.Mutex
	var firstErr error

	for _, r := range runners {
		go func(r *GameRunner) {
			defer wg.Done()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				rec, err := r.PlayGame(ctx)
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					continue
				}
				results <- rec
				CVCCounter.Add(1)
			}
		}(r)
	}

	go func() {
	gameLoop:
		for i := 1; i < numGames+1; i++ {
			select {
			case jobs <- Job{}:
			case <-ctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				break gameLoop
			}
			if i%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i)
			}
		}
		close(jobs)
		log.Debug().Msg("Finished queueing all jobs.")
		wg.Wait()
		log.Debug().Msg("All games finished.")
		close(logChan)
		close(results)
	}()

	logDone := make(chan struct{})
	go func() {
		defer close(logDone)
		logfile.WriteString(logHeader)
		for msg := range logChan {
			logfile.WriteString(msg)
		}
		logfile.Close()
		log.Debug().Msg("Exiting turn logger goroutine!")
	}()

	summary := NewSummary()
	for rec := range results {
		summary.Add(rec)
	}
	<-logDone

	if firstErr != nil {
		return summary, firstErr
	}
	return summary, ctx.Err()
}
