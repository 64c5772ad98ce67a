package agent

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/abalone/board"
	"github.com/domino14/abalone/config"
	"github.com/domino14/abalone/game"
	"github.com/domino14/abalone/negamax"
	"github.com/domino14/abalone/zobrist"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// centreVsRim puts fourteen black marbles around the centre and nine white
// ones as far from it as possible.
func centreVsRim() board.Board {
	cells := make([]int, board.NumCells)
	for i := range cells {
		cells[i] = i
	}
	dist := func(i int) float64 { return board.CoordOf(i).Distance(board.Center) }
	sort.SliceStable(cells, func(i, j int) bool { return dist(cells[i]) < dist(cells[j]) })

	var b board.Board
	for _, idx := range cells[:14] {
		b.Set(idx, board.BlackMarble)
	}
	for _, idx := range cells[len(cells)-9:] {
		b.Set(idx, board.WhiteMarble)
	}
	return b
}

func testConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	if err := cfg.Load(args); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestChooseMoveCentreVsRim(t *testing.T) {
	is := is.New(t)
	cfg := testConfig(t, "--max-depth", "1", "--zobrist-seed", "e2e")
	p, err := NewPlayer(cfg, board.Black)
	is.NoErr(err)

	pos := game.NewPosition(centreVsRim(), board.Black, 20, game.DefaultMaxSteps)
	is.Equal(pos.Marbles(board.Black), 14)
	is.Equal(pos.Marbles(board.White), 9)

	res, err := p.Search(context.Background(), pos)
	is.NoErr(err)
	is.True(res.HasMove)

	rules := game.Rules{}
	after, err := rules.Play(pos, res.Move)
	is.NoErr(err)
	is.Equal(after.Marbles(board.Black), 14) // never throws its own marbles away

	// Score every alternative with the same depth: the chosen move is the
	// best of them and strictly better than the worst.
	probe := negamax.NewSolver[game.Position, game.Move](rules,
		positionEvaluator{p.Evaluator()}, zobrist.NewHasher(board.NumCells, "e2e"))
	probe.SetCutoffPolicy(negamax.FixedDepth{MaxDepth: 0})
	probe.SetTranspositionTableOptim(false)
	best, worst := -game.WinScore*2, game.WinScore*2
	for _, m := range rules.LegalMoves(pos) {
		r, err := probe.Solve(context.Background(), rules.Apply(pos, m))
		is.NoErr(err)
		v := -r.Score
		if v > best {
			best = v
		}
		if v < worst {
			worst = v
		}
	}
	assert.InDelta(t, best, res.Score, 1e-6)
	assert.Greater(t, res.Score, worst)

	m, err := p.ChooseMove(context.Background(), pos)
	is.NoErr(err)
	is.Equal(m, res.Move)
}

func TestChooseMoveErrors(t *testing.T) {
	is := is.New(t)
	p, err := NewPlayer(testConfig(t), board.White)
	is.NoErr(err)

	_, err = p.ChooseMove(context.Background(), game.NewGame(game.DefaultMaxSteps))
	is.True(errors.Is(err, ErrNotOurTurn))

	over := game.NewPosition(board.Classic(), board.White, game.DefaultMaxSteps, game.DefaultMaxSteps)
	_, err = p.ChooseMove(context.Background(), over)
	is.True(errors.Is(err, ErrGameOver))
}

func TestNewGameClearsTable(t *testing.T) {
	is := is.New(t)
	p, err := NewPlayer(testConfig(t, "--max-depth", "1"), board.Black)
	is.NoErr(err)
	_, err = p.ChooseMove(context.Background(), game.NewGame(game.DefaultMaxSteps))
	is.NoErr(err)
	is.True(p.Solver().TranspositionTable().Len() > 0)

	p.NewGame()
	is.Equal(p.Solver().TranspositionTable().Len(), 0)
}

func TestMoveTimeStillMoves(t *testing.T) {
	is := is.New(t)
	p, err := NewPlayer(testConfig(t, "--max-depth", "6", "--move-time", "1ns"), board.Black)
	is.NoErr(err)
	pos := game.NewGame(game.DefaultMaxSteps)
	res, err := p.Search(context.Background(), pos)
	is.NoErr(err)
	is.True(res.Aborted)
	is.True(res.HasMove)
	_, err = game.Rules{}.Play(pos, res.Move)
	is.NoErr(err)
}

func TestPlyLimitBoundsSearch(t *testing.T) {
	is := is.New(t)
	p, err := NewPlayer(testConfig(t, "--max-depth", "3"), board.Black)
	is.NoErr(err)
	// one ply before the end the search sees only the last move.
	pos := game.NewPosition(board.Classic(), board.Black, game.DefaultMaxSteps-1, game.DefaultMaxSteps)
	res, err := p.Search(context.Background(), pos)
	is.NoErr(err)
	is.True(res.HasMove)
	is.Equal(res.Nodes, uint64(1+len(game.Rules{}.LegalMoves(pos))))
}
