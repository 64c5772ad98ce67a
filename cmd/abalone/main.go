package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/abalone/config"
	"github.com/domino14/abalone/shell"
)

var (
	GitVersion string
)

//go:embed abalone.txt
var abalonebanner string

func setupLogging(cfg *config.Config) {
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

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func main() {
	fmt.Println(abalonebanner)
	fmt.Println(GitVersion)

	// Flags configure the session; anything after them is run as a single
	// shell command instead of starting the interactive loop.
	cfg := config.DefaultConfig()
	args := os.Args[1:]
	var command []string
	for i, a := range args {
		if a == "--" {
			args, command = args[:i], args[i+1:]
			break
		}
	}
	if err := cfg.Load(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)
	log.Debug().Msgf("Loaded config: %v", cfg.AllSettings())

	if prof := os.Getenv("ABALONE_CPU_PROFILE"); prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	if len(command) > 0 {
		sc, err := shell.NewCommandController(cfg, GitVersion)
		if err != nil {
			log.Fatal().Err(err).Msg("could not set up game")
		}
		resp, err := sc.Execute(context.Background(), strings.Join(command, " "))
		if err != nil {
			log.Error().Err(err).Msg("command-failed")
			return
		}
		fmt.Println(resp.String())
		return
	}

	sc, err := shell.NewShellController(cfg, GitVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start shell")
	}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	go sc.Loop(sig)
	<-idleConnsClosed
	log.Info().Msg("shutting down")
}
