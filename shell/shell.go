package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/abalone/agent"
	"github.com/domino14/abalone/board"
	"github.com/domino14/abalone/config"
	"github.com/domino14/abalone/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("quit")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	pos     game.Position
	players [2]*agent.Player
	rules   game.Rules

	gitVersion string
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController returns a controller with a readline instance
// attached, for interactive use.
func NewShellController(cfg *config.Config, gitVersion string) (*ShellController, error) {
	sc, err := NewCommandController(cfg, gitVersion)
	if err != nil {
		return nil, err
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mabalone>\033[0m ",
		HistoryFile:     "/tmp/abalone_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	return sc, nil
}

// NewCommandController returns a controller for running single commands
// with Execute. It has no terminal attached and cannot run Loop.
func NewCommandController(cfg *config.Config, gitVersion string) (*ShellController, error) {
	sc, err := newController(cfg)
	if err != nil {
		return nil, err
	}
	sc.gitVersion = gitVersion
	return sc, nil
}

func newController(cfg *config.Config) (*ShellController, error) {
	sc := &ShellController{config: cfg}
	if err := sc.newGame(cfg.GetString(config.ConfigLayout)); err != nil {
		return nil, err
	}
	return sc, nil
}

// newGame sets up a fresh position and a fresh pair of players.
func (sc *ShellController) newGame(layout string) error {
	b, err := board.LayoutNamed(layout)
	if err != nil {
		return err
	}
	if err := sc.resetPlayers(); err != nil {
		return err
	}
	sc.pos = game.NewPosition(b, board.Black, 0, sc.config.GetInt(config.ConfigMaxSteps))
	return nil
}

func (sc *ShellController) resetPlayers() error {
	var players [2]*agent.Player
	for _, c := range []board.Color{board.Black, board.White} {
		p, err := agent.NewPlayer(sc.config, c)
		if err != nil {
			return err
		}
		players[c] = p
	}
	sc.players = players
	return nil
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}

	lastWasOption := false
	lastOption := ""
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if lastWasOption {
				return nil, errWrongOptionSyntax
			}
			lastWasOption = true
			lastOption = f[1:]
			continue
		}
		if lastWasOption {
			lastWasOption = false
			options[lastOption] = f
		} else {
			args = append(args, f)
		}
	}
	if lastWasOption {
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs one command line and returns what it has to say.
func (sc *ShellController) Execute(ctx context.Context, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	handler, ok := sc.handlers()[cmd.cmd]
	if !ok {
		return nil, errors.New("command not found: " + cmd.cmd)
	}
	return handler(ctx, cmd)
}

func (sc *ShellController) showMessage(msg string) {
	w := io.Writer(os.Stdout)
	if sc.l != nil {
		w = sc.l.Stdout()
	}
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.showMessage(sc.pos.ToDisplayText())

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.Execute(context.Background(), line)
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
