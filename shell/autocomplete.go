package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/abalone/board"
	"github.com/domino14/abalone/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
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
	"new":      {Args: []string{config.LayoutClassic, config.LayoutBelgianDaisy}},
	"ai":       {Options: []string{"-n"}},
	"selfplay": {Options: []string{"-threads", "-log"}},
	"set":      {Args: config.Keys()},
	"help":     {Args: []string{"play", "set", "selfplay"}},
}

var commandNames = []string{
	"new", "show", "moves", "play", "ai", "eval", "load", "save", "set",
	"selfplay", "help", "exit",
}

var directionNames = func() []string {
	names := make([]string, board.NumDirections)
	for d := board.Direction(0); d < board.NumDirections; d++ {
		names[d] = d.String()
	}
	return names
}()

// Do implements the readline.AutoComplete interface
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
		nargs := len(fields) - 1
		if !endsWithSpace {
			nargs--
		}
		switch {
		case cmdName == "play" && nargs == 1:
			completions = directionNames
		case cmdName == "set" && nargs == 1:
			completions = c.settingValues(fields[1])
		case nargs == 0:
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

func (c *ShellCompleter) settingValues(key string) []string {
	switch key {
	case config.ConfigTTReplacement:
		return []string{config.ReplaceByDepth, config.ReplaceAlways}
	case config.ConfigLayout:
		return []string{config.LayoutClassic, config.LayoutBelgianDaisy}
	case config.ConfigDebug:
		return []string{"true", "false"}
	}
	if c.sc != nil && c.sc.config != nil {
		return []string{c.sc.config.GetString(key)}
	}
	return nil
}
