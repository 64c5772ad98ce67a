package automatic

// Running many games at once, and writing them out.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/abalone/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// PlayGames plays numGames games, at most threads at a time, and returns
// their summary. If logw is not nil every finished game is written to it
// as a YAML document. Each game gets its own pair of players, so nothing
// is shared between goroutines but the log writer.
func PlayGames(ctx context.Context, cfg *config.Config, numGames, threads int, logw io.Writer) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)
	if threads < 1 {
		threads = 1
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	var mu sync.Mutex
	var enc *yaml.Encoder
	if logw != nil {
		enc = yaml.NewEncoder(logw)
		enc.SetIndent(2)
	}
	records := make([]*GameRecord, numGames)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < numGames; i++ {
		g.Go(func() error {
			r, err := NewGameRunner(cfg)
			if err != nil {
				return err
			}
			rec, err := r.PlayGame(ctx)
			if err != nil {
				return err
			}
			records[i] = rec
			CVCCounter.Add(1)
			n := CVCCounter.Value()
			if n%100 == 0 {
				log.Info().Int64("games", n).Msg("games-played")
			}
			if enc == nil {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			return enc.Encode(rec)
		})
	}
	err := g.Wait()
	if enc != nil {
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("games", numGames).Msg("All games finished.")
	return Summarize(records), nil
}
