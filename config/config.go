package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigMaxDepth            = "max-depth"
	ConfigOrderingThreshold   = "ordering-threshold"
	ConfigMaxSteps            = "max-steps"
	ConfigMoveTime            = "move-time"
	ConfigTTMemoryFraction    = "tt-memory-fraction"
	ConfigTTReplacement       = "tt-replacement"
	ConfigZobristSeed         = "zobrist-seed"
	ConfigLayout              = "layout"
	ConfigWeightMaterial      = "weight-material"
	ConfigWeightCentrality    = "weight-centrality"
	ConfigWeightCohesion      = "weight-cohesion"
	ConfigWeightAlignment     = "weight-alignment"
	ConfigSelfplayGames       = "selfplay-games"
	ConfigSelfplayThreads     = "selfplay-threads"
	ConfigSelfplayRandomPlies = "selfplay-random-plies"
	ConfigSelfplayLogFile     = "selfplay-log-file"
	ConfigFile                = "config-file"
)

const (
	ReplaceByDepth = "depth"
	ReplaceAlways  = "always"

	LayoutClassic      = "classic"
	LayoutBelgianDaisy = "belgian-daisy"
)

var ErrBadSetting = errors.New("bad setting")

type setting struct {
	key   string
	value any
	usage string
}

var settings = []setting{
	{ConfigDebug, false, "log at debug level"},
	{ConfigMaxDepth, 2, "search depth in plies below the root"},
	{ConfigOrderingThreshold, 10, "plies played before moves are ordered by material"},
	{ConfigMaxSteps, 50, "plies after which the game ends"},
	{ConfigMoveTime, time.Duration(0), "time limit per move; 0 for none"},
	{ConfigTTMemoryFraction, 0.0, "cap the transposition table at this fraction of system memory; 0 for no cap"},
	{ConfigTTReplacement, ReplaceByDepth, "transposition table replacement: depth or always"},
	{ConfigZobristSeed, "", "seed for reproducible position hashing; empty for random"},
	{ConfigLayout, LayoutClassic, "starting layout: classic or belgian-daisy"},
	{ConfigWeightMaterial, 10000.0, "evaluation weight of the marble difference"},
	{ConfigWeightCentrality, 1.0, "evaluation weight of closeness to the centre"},
	{ConfigWeightCohesion, 1.0, "evaluation weight of neighbouring own marbles"},
	{ConfigWeightAlignment, 1.0, "evaluation weight of lines of three; 0 disables it"},
	{ConfigSelfplayGames, 10, "number of self-play games"},
	{ConfigSelfplayThreads, 4, "self-play games played at once"},
	{ConfigSelfplayRandomPlies, 2, "random plies played at the start of each self-play game"},
	{ConfigSelfplayLogFile, "", "write self-play game logs to this YAML file"},
	{ConfigFile, "", "YAML file to read settings from"},
}

// Config holds every setting. Precedence is flag, then ABALONE_* environment
// variable, then config file, then default.
type Config struct {
	*viper.Viper
}

func DefaultConfig() *Config {
	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.value)
	}
	v.SetEnvPrefix("ABALONE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v}
}

// Load parses command-line args and reads the config file if one is named.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("abalone", pflag.ContinueOnError)
	for _, s := range settings {
		switch d := s.value.(type) {
		case bool:
			fs.Bool(s.key, d, s.usage)
		case int:
			fs.Int(s.key, d, s.usage)
		case float64:
			fs.Float64(s.key, d, s.usage)
		case time.Duration:
			fs.Duration(s.key, d, s.usage)
		case string:
			fs.String(s.key, d, s.usage)
		}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if f := c.GetString(ConfigFile); f != "" {
		c.SetConfigFile(f)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", f, err)
		}
	}
	return c.Validate()
}

// Validate checks the settings that only take a few values.
func (c *Config) Validate() error {
	checks := []struct {
		key     string
		allowed []string
	}{
		{ConfigTTReplacement, []string{ReplaceByDepth, ReplaceAlways}},
		{ConfigLayout, []string{LayoutClassic, LayoutBelgianDaisy}},
	}
	for _, ch := range checks {
		v := c.GetString(ch.key)
		ok := false
		for _, a := range ch.allowed {
			if v == a {
				ok = true
			}
		}
		if !ok {
			return fmt.Errorf("%w: %s must be one of %s, not %q", ErrBadSetting, ch.key,
				strings.Join(ch.allowed, ", "), v)
		}
	}
	if c.GetInt(ConfigMaxDepth) < 0 {
		return fmt.Errorf("%w: %s cannot be negative", ErrBadSetting, ConfigMaxDepth)
	}
	if f := c.GetFloat64(ConfigTTMemoryFraction); f < 0 || f > 1 {
		return fmt.Errorf("%w: %s must be between 0 and 1", ErrBadSetting, ConfigTTMemoryFraction)
	}
	if c.GetInt(ConfigMaxSteps) <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrBadSetting, ConfigMaxSteps)
	}
	return nil
}

// Known reports whether key is a setting.
func Known(key string) bool {
	for _, s := range settings {
		if s.key == key {
			return true
		}
	}
	return false
}

// Keys lists every setting in a stable order.
func Keys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.key
	}
	return keys
}

func (c *Config) MoveTime() time.Duration {
	return c.GetDuration(ConfigMoveTime)
}

// Write saves the settings to the config file, if one was given.
func (c *Config) Write() error {
	f := c.GetString(ConfigFile)
	if f == "" {
		return errors.New("no config file to write to")
	}
	return c.WriteConfigAs(f)
}
