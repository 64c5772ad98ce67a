package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/abalone/automatic"
	"github.com/domino14/abalone/config"
	"github.com/domino14/abalone/game"
	"github.com/domino14/abalone/heuristic"
)

type Response struct {
	message string
}

func (r *Response) String() string {
	if r == nil {
		return ""
	}
	return r.message
}

func msg(message string) *Response {
	return &Response{message: message}
}

type handler func(ctx context.Context, cmd *shellcmd) (*Response, error)

func (sc *ShellController) handlers() map[string]handler {
	return map[string]handler{
		"new":      sc.new,
		"show":     sc.show,
		"moves":    sc.moves,
		"play":     sc.play,
		"ai":       sc.aiplay,
		"eval":     sc.eval,
		"load":     sc.load,
		"save":     sc.save,
		"set":      sc.set,
		"selfplay": sc.selfplay,
		"help":     sc.help,
		"exit":     sc.exit,
		"bye":      sc.exit,
	}
}

func (sc *ShellController) new(_ context.Context, cmd *shellcmd) (*Response, error) {
	layout := sc.config.GetString(config.ConfigLayout)
	if len(cmd.args) > 0 {
		layout = cmd.args[0]
	}
	if err := sc.newGame(layout); err != nil {
		return nil, err
	}
	return msg(sc.pos.ToDisplayText()), nil
}

func (sc *ShellController) show(_ context.Context, _ *shellcmd) (*Response, error) {
	return msg(sc.pos.ToDisplayText()), nil
}

func (sc *ShellController) moves(_ context.Context, _ *shellcmd) (*Response, error) {
	if sc.pos.Over() {
		return nil, errors.New("the game is over")
	}
	moves := sc.rules.LegalMoves(sc.pos)
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	sort.Strings(names)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d legal moves for %s:\n", len(names), sc.pos.OnTurn())
	for i, n := range names {
		fmt.Fprintf(&sb, "%-12s", n)
		if i%6 == 5 {
			sb.WriteString("\n")
		}
	}
	return msg(strings.TrimRight(sb.String(), " \n")), nil
}

func (sc *ShellController) play(_ context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <move>, for example play E5 W or play C3-C5 NE")
	}
	m, err := game.ParseMove(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	pos, err := sc.rules.Play(sc.pos, m)
	if err != nil {
		return nil, err
	}
	sc.pos = pos
	return msg(sc.pos.ToDisplayText()), nil
}

func (sc *ShellController) aiplay(ctx context.Context, cmd *shellcmd) (*Response, error) {
	n := 1
	if s, ok := cmd.options["n"]; ok {
		var err error
		if n, err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}
	var sb strings.Builder
	for i := 0; i < n && !sc.pos.Over(); i++ {
		p := sc.players[sc.pos.OnTurn()]
		res, err := p.Search(ctx, sc.pos)
		if err != nil {
			return nil, err
		}
		if sc.pos, err = sc.rules.Play(sc.pos, res.Move); err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "%s plays %s (score %.2f, %d nodes", p.Side(), res.Move, res.Score, res.Nodes)
		if res.Aborted {
			sb.WriteString(", out of time")
		}
		sb.WriteString(")\n")
	}
	sb.WriteString(sc.pos.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) eval(_ context.Context, _ *shellcmd) (*Response, error) {
	b := sc.pos.Board()
	side := sc.pos.OnTurn()
	tvs := sc.players[side].Evaluator().Breakdown(&b, side)
	return msg(fmt.Sprintf("Evaluation for %s:\n%s", side, heuristic.BreakdownText(tvs))), nil
}

func (sc *ShellController) load(_ context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	f, err := os.Open(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pos, err := game.ReadPosition(f)
	if err != nil {
		return nil, err
	}
	if err := sc.resetPlayers(); err != nil {
		return nil, err
	}
	sc.pos = pos
	log.Debug().Str("file", cmd.args[0]).Int("step", pos.Step()).Msg("loaded-position")
	return msg(sc.pos.ToDisplayText()), nil
}

func (sc *ShellController) save(_ context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <file>")
	}
	f, err := os.Create(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := game.WritePosition(f, sc.pos); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return msg("saved position to " + cmd.args[0]), nil
}

func (sc *ShellController) set(_ context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range config.Keys() {
			fmt.Fprintf(&sb, "%-22s %v\n", k, sc.config.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if !config.Known(key) {
		return nil, fmt.Errorf("%w: unknown setting %s", config.ErrBadSetting, key)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", key, sc.config.Get(key))), nil
	}
	old := sc.config.Get(key)
	sc.config.Set(key, cmd.args[1])
	if err := sc.resetPlayers(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	// the players start with empty tables; the position stays.
	return msg("set " + key + " to " + cmd.args[1]), nil
}

func (sc *ShellController) selfplay(ctx context.Context, cmd *shellcmd) (*Response, error) {
	n := sc.config.GetInt(config.ConfigSelfplayGames)
	if len(cmd.args) > 0 {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	threads := sc.config.GetInt(config.ConfigSelfplayThreads)
	if s, ok := cmd.options["threads"]; ok {
		var err error
		if threads, err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}
	logFile := sc.config.GetString(config.ConfigSelfplayLogFile)
	if s, ok := cmd.options["log"]; ok {
		logFile = s
	}
	var summary *automatic.Summary
	var err error
	if logFile == "" {
		summary, err = automatic.PlayGames(ctx, sc.config, n, threads, nil)
	} else {
		f, ferr := os.Create(logFile)
		if ferr != nil {
			return nil, ferr
		}
		summary, err = automatic.PlayGames(ctx, sc.config, n, threads, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}

func (sc *ShellController) help(_ context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		if sc.gitVersion != "" {
			return msg("abalone " + sc.gitVersion + "\n\n" + usage()), nil
		}
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}

func (sc *ShellController) exit(_ context.Context, _ *shellcmd) (*Response, error) {
	return nil, errQuit
}
