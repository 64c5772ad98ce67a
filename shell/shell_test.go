package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/abalone/board"
	"github.com/domino14/abalone/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"selfplay 10 -log /path/to/log.yaml",
			&shellcmd{"selfplay", []string{"10"}, map[string]string{"log": "/path/to/log.yaml"}},
			nil},
		{"play C3-C5 NE",
			&shellcmd{"play", []string{"C3-C5", "NE"}, map[string]string{}},
			nil},
		{"ai -n 4 ",
			&shellcmd{"ai", nil, map[string]string{"n": "4"}},
			nil},
		{"selfplay -threads",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func testController(t *testing.T, args ...string) *ShellController {
	t.Helper()
	cfg := config.DefaultConfig()
	if err := cfg.Load(append([]string{"--max-depth", "0"}, args...)); err != nil {
		t.Fatal(err)
	}
	sc, err := newController(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestPlayAndMoves(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	ctx := context.Background()

	resp, err := sc.Execute(ctx, "moves")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "legal moves for black"))

	_, err = sc.Execute(ctx, "play C3 NE")
	is.NoErr(err)
	is.Equal(sc.pos.OnTurn(), board.White)
	is.Equal(sc.pos.Step(), 1)

	_, err = sc.Execute(ctx, "play E5 W") // empty cell
	is.True(err != nil)
	is.Equal(sc.pos.Step(), 1)

	_, err = sc.Execute(ctx, "ai -n 2")
	is.NoErr(err)
	is.Equal(sc.pos.Step(), 3)

	_, err = sc.Execute(ctx, "new belgian-daisy")
	is.NoErr(err)
	is.Equal(sc.pos.Step(), 0)
	is.Equal(sc.pos.Board(), board.BelgianDaisy())

	_, err = sc.Execute(ctx, "frobnicate")
	is.True(err != nil)
}

func TestEval(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	resp, err := sc.Execute(context.Background(), "eval")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "material"))
	is.True(strings.Contains(resp.message, "total"))
}

func TestSaveAndLoad(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	ctx := context.Background()
	f := filepath.Join(t.TempDir(), "pos.yaml")

	_, err := sc.Execute(ctx, "play C3-C5 NE")
	is.NoErr(err)
	saved := sc.pos
	_, err = sc.Execute(ctx, "save "+f)
	is.NoErr(err)

	_, err = sc.Execute(ctx, "new")
	is.NoErr(err)
	_, err = sc.Execute(ctx, "load "+f)
	is.NoErr(err)
	is.Equal(sc.pos, saved)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	ctx := context.Background()

	resp, err := sc.Execute(ctx, "set max-depth")
	is.NoErr(err)
	is.Equal(resp.message, "max-depth: 0")

	_, err = sc.Execute(ctx, "set max-depth 1")
	is.NoErr(err)
	is.Equal(sc.config.GetInt(config.ConfigMaxDepth), 1)

	_, err = sc.Execute(ctx, "set tt-replacement sometimes")
	is.True(errors.Is(err, config.ErrBadSetting))
	is.Equal(sc.config.GetString(config.ConfigTTReplacement), config.ReplaceByDepth)

	_, err = sc.Execute(ctx, "set lexicon NWL20")
	is.True(errors.Is(err, config.ErrBadSetting))
}

func TestSelfplay(t *testing.T) {
	is := is.New(t)
	sc := testController(t, "--max-steps", "6")
	f := filepath.Join(t.TempDir(), "games.yaml")
	resp, err := sc.Execute(context.Background(), "selfplay 2 -threads 2 -log "+f)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Games played: 2"))
	_, err = os.Stat(f)
	is.NoErr(err)
}

func TestHelpAndExit(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	resp, err := sc.Execute(context.Background(), "help")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "selfplay"))
	resp, err = sc.Execute(context.Background(), "help play")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "broadside"))
	resp, err = sc.Execute(context.Background(), "help nothing")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "There is no help text"))

	_, err = sc.Execute(context.Background(), "exit")
	is.Equal(err, errQuit)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(testController(t))

	line := []rune("sel")
	matches, n := c.Do(line, len(line))
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("fplay")})

	line = []rune("set tt-replacement a")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("lways")})

	line = []rune("play C3 N")
	matches, _ = c.Do(line, len(line))
	is.Equal(len(matches), 2) // NE and NW
}

func TestCommandController(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	is.NoErr(cfg.Load([]string{"--max-depth", "0"}))
	sc, err := NewCommandController(cfg, "v1.2.3")
	is.NoErr(err)
	is.True(sc.l == nil)

	resp, err := sc.Execute(context.Background(), "help")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.String(), "abalone v1.2.3"))
	resp, err = sc.Execute(context.Background(), "ai")
	is.NoErr(err)
	is.True(resp.String() != "")
}
