// selfplay pits two copies of the agent against each other and prints a
// summary of the results. `selfplay analyze <logfile>` summarizes a log
// written by an earlier run instead.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/abalone/automatic"
	"github.com/domino14/abalone/config"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if len(os.Args) == 3 && os.Args[1] == "analyze" {
		summary, err := automatic.AnalyzeLogFile(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("analyzing log")
		}
		fmt.Println(summary)
		return
	}

	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var logw io.Writer
	if fn := cfg.GetString(config.ConfigSelfplayLogFile); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			log.Fatal().Err(err).Msg("creating game log")
		}
		defer f.Close()
		logw = f
	}

	start := time.Now()
	summary, err := automatic.PlayGames(ctx, cfg,
		cfg.GetInt(config.ConfigSelfplayGames),
		cfg.GetInt(config.ConfigSelfplayThreads),
		logw)
	if err != nil {
		log.Error().Err(err).Msg("self-play stopped early")
	}
	if summary != nil {
		fmt.Println(summary)
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("done")
}
