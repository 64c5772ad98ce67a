// Package agent wraps the search in a player that can be asked for moves
// over the course of a game.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/abalone/board"
	"github.com/domino14/abalone/config"
	"github.com/domino14/abalone/game"
	"github.com/domino14/abalone/heuristic"
	"github.com/domino14/abalone/negamax"
	"github.com/domino14/abalone/zobrist"
)

var (
	ErrNotOurTurn = errors.New("it is not this player's turn")
	ErrGameOver   = errors.New("the game is over")
)

var _ negamax.Game[game.Position, game.Move] = game.Rules{}

type positionEvaluator struct {
	*heuristic.Evaluator
}

func (e positionEvaluator) Score(p game.Position, side board.Color) float64 {
	b := p.Board()
	return e.Evaluate(&b, side)
}

// Player picks moves for one side. It keeps its transposition table
// between moves; call NewGame before reusing it for another game.
type Player struct {
	side     board.Color
	eval     *heuristic.Evaluator
	solver   *negamax.Solver[game.Position, game.Move]
	maxDepth int
	moveTime time.Duration
}

func WeightsFromConfig(cfg *config.Config) heuristic.Weights {
	return heuristic.Weights{
		Material:   cfg.GetFloat64(config.ConfigWeightMaterial),
		Centrality: cfg.GetFloat64(config.ConfigWeightCentrality),
		Cohesion:   cfg.GetFloat64(config.ConfigWeightCohesion),
		Alignment:  cfg.GetFloat64(config.ConfigWeightAlignment),
	}
}

func NewPlayer(cfg *config.Config, side board.Color) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eval := heuristic.NewEvaluator(WeightsFromConfig(cfg))
	z := zobrist.NewHasher(board.NumCells, cfg.GetString(config.ConfigZobristSeed))
	s := negamax.NewSolver[game.Position, game.Move](game.Rules{}, positionEvaluator{eval}, z)

	p := &Player{
		side:     side,
		eval:     eval,
		solver:   s,
		maxDepth: cfg.GetInt(config.ConfigMaxDepth),
		moveTime: cfg.MoveTime(),
	}
	// Positions at the ply limit are already terminal, so a fixed depth
	// never searches past the end of the game.
	s.SetCutoffPolicy(negamax.FixedDepth{MaxDepth: p.maxDepth})
	s.SetOrderer(negamax.MaterialOrderer[game.Position, game.Move]{
		Threshold: cfg.GetInt(config.ConfigOrderingThreshold),
	})

	tt := s.TranspositionTable()
	if cfg.GetString(config.ConfigTTReplacement) == config.ReplaceAlways {
		tt.SetReplacementPolicy(negamax.AlwaysReplace)
	}
	tt.SetMemoryFraction(cfg.GetFloat64(config.ConfigTTMemoryFraction))

	log.Debug().Str("side", side.String()).Int("max-depth", p.maxDepth).
		Dur("move-time", p.moveTime).
		Msg("new-player")
	return p, nil
}

func (p *Player) Side() board.Color {
	return p.side
}

func (p *Player) Evaluator() *heuristic.Evaluator {
	return p.eval
}

func (p *Player) Solver() *negamax.Solver[game.Position, game.Move] {
	return p.solver
}

// NewGame forgets everything learned in the previous game.
func (p *Player) NewGame() {
	p.solver.TranspositionTable().Reset()
}

// Search runs the search on pos for whichever side is to move, within the
// configured move time if there is one.
func (p *Player) Search(ctx context.Context, pos game.Position) (negamax.SearchResult[game.Move], error) {
	if p.moveTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.moveTime)
		defer cancel()
	}
	return p.solver.Solve(ctx, pos)
}

// ChooseMove returns the move the player makes in pos.
func (p *Player) ChooseMove(ctx context.Context, pos game.Position) (game.Move, error) {
	if pos.Over() {
		return game.Move{}, ErrGameOver
	}
	if pos.OnTurn() != p.side {
		return game.Move{}, fmt.Errorf("%w: %s to move, player is %s", ErrNotOurTurn, pos.OnTurn(), p.side)
	}
	res, err := p.Search(ctx, pos)
	if err != nil {
		return game.Move{}, err
	}
	if !res.HasMove {
		return game.Move{}, ErrGameOver
	}
	log.Debug().Str("side", p.side.String()).Int("step", pos.Step()).
		Str("move", res.Move.String()).
		Float64("score", res.Score).
		Uint64("nodes", res.Nodes).
		Bool("aborted", res.Aborted).
		Msg("chose-move")
	return res.Move, nil
}
