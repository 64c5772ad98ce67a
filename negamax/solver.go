// Package negamax implements a depth-limited alpha-beta search in negamax
// form, with a transposition table keyed by Zobrist fingerprints.
package negamax

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/abalone/zobrist"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

var (
	// ErrNoLegalMoves means a position that is not over has no legal moves.
	// The rules engine is inconsistent and the search cannot go on.
	ErrNoLegalMoves = errors.New("no legal moves in a non-terminal position")
)

// SearchResult is what Solve found. Move is only meaningful if HasMove is
// set; a terminal root has no move.
type SearchResult[M comparable] struct {
	Score   float64
	Move    M
	HasMove bool
	Nodes   uint64
	// Aborted is set when the context ran out before the search finished.
	// Move is then the best move among the fully searched ones.
	Aborted bool
}

type nodeResult[M comparable] struct {
	score   float64
	move    M
	hasMove bool
}

type Solver[P any, M comparable] struct {
	game    Game[P, M]
	eval    Evaluator[P]
	zobrist *zobrist.Hasher
	ttable  *TranspositionTable[M]
	cutoff  CutoffPolicy
	orderer MoveOrderer[P, M]

	transpositionTableOptim bool

	nodes atomic.Uint64
}

// NewSolver returns a solver with a fixed depth of DefaultMaxDepth plies,
// material move ordering and an empty transposition table.
func NewSolver[P any, M comparable](g Game[P, M], e Evaluator[P], z *zobrist.Hasher) *Solver[P, M] {
	return &Solver[P, M]{
		game:                    g,
		eval:                    e,
		zobrist:                 z,
		ttable:                  NewTranspositionTable[M](KeepMostSearched),
		cutoff:                  FixedDepth{MaxDepth: DefaultMaxDepth},
		orderer:                 MaterialOrderer[P, M]{Threshold: DefaultOrderingThreshold},
		transpositionTableOptim: true,
	}
}

func (s *Solver[P, M]) SetCutoffPolicy(c CutoffPolicy) {
	s.cutoff = c
}

func (s *Solver[P, M]) SetOrderer(o MoveOrderer[P, M]) {
	s.orderer = o
}

func (s *Solver[P, M]) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver[P, M]) SetTranspositionTable(tt *TranspositionTable[M]) {
	s.ttable = tt
}

func (s *Solver[P, M]) TranspositionTable() *TranspositionTable[M] {
	return s.ttable
}

func (s *Solver[P, M]) Zobrist() *zobrist.Hasher {
	return s.zobrist
}

// Nodes is the number of nodes visited by the current or last search.
func (s *Solver[P, M]) Nodes() uint64 {
	return s.nodes.Load()
}

func aborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Solve searches root and returns its value for the side to move and the
// move that achieves it. If ctx is done before the search finishes, the
// best fully searched root move is returned, or the first move in search
// order if none finished; that is not an error.
func (s *Solver[P, M]) Solve(ctx context.Context, root P) (SearchResult[M], error) {
	tstart := time.Now()
	s.nodes.Store(0)
	side := s.game.SideToMove(root)
	if s.game.IsTerminal(root) {
		return SearchResult[M]{Score: s.game.TerminalScore(root, side)}, nil
	}

	res, err := s.negamax(ctx, root, 0, math.Inf(-1), math.Inf(1))
	wasAborted := false
	if err != nil {
		if !aborted(err) {
			return SearchResult[M]{}, err
		}
		wasAborted = true
		log.Warn().Err(err).Str("side", side.String()).
			Bool("any-move-searched", res.hasMove).
			Msg("search-aborted")
		if !res.hasMove {
			if res, err = s.fallback(root); err != nil {
				return SearchResult[M]{}, err
			}
		}
	}

	stats := s.ttable.Stats()
	log.Debug().
		Uint64("nodes", s.nodes.Load()).
		Int("ttable-entries", stats.Entries).
		Uint64("ttable-created", stats.Created).
		Uint64("ttable-lookups", stats.Lookups).
		Uint64("ttable-hits", stats.Hits).
		Uint64("ttable-replaced", stats.Replaced).
		Float64("score", res.score).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")

	return SearchResult[M]{
		Score:   res.score,
		Move:    res.move,
		HasMove: res.hasMove,
		Nodes:   s.nodes.Load(),
		Aborted: wasAborted,
	}, nil
}

// fallback picks the first move in search order and scores it statically.
func (s *Solver[P, M]) fallback(root P) (nodeResult[M], error) {
	moves := s.game.LegalMoves(root)
	if len(moves) == 0 {
		return nodeResult[M]{}, ErrNoLegalMoves
	}
	m := s.orderer.Order(s.game, root, moves)[0]
	side := s.game.SideToMove(root)
	return nodeResult[M]{
		score:   s.eval.Score(s.game.Apply(root, m), side),
		move:    m,
		hasMove: true,
	}, nil
}

// negamax returns the value of pos for its side to move. On a context
// error it also returns the best child searched so far, which only the
// root makes use of.
func (s *Solver[P, M]) negamax(ctx context.Context, pos P, depth int, α, β float64) (nodeResult[M], error) {
	s.nodes.Add(1)
	side := s.game.SideToMove(pos)
	if s.game.IsTerminal(pos) {
		return nodeResult[M]{score: s.game.TerminalScore(pos, side)}, nil
	}
	// The root is always expanded so that it has a move to return.
	if depth > 0 && s.cutoff.ShouldStop(depth, s.game.Progress(pos)) {
		return nodeResult[M]{score: s.eval.Score(pos, side)}, nil
	}

	alphaOrig := α
	var nodeKey uint64
	if s.transpositionTableOptim {
		var err error
		nodeKey, err = s.zobrist.Hash(s.game.Occupancy(pos), side)
		if err != nil {
			return nodeResult[M]{}, fmt.Errorf("hashing position at depth %d: %w", depth, err)
		}
		if e, ok := s.ttable.lookup(nodeKey, depth); ok && (depth > 0 || e.HasMove) {
			hit := nodeResult[M]{score: e.Score, move: e.Move, hasMove: e.HasMove}
			switch e.Bound {
			case Exact:
				return hit, nil
			case Lower:
				α = math.Max(α, e.Score)
			case Upper:
				β = math.Min(β, e.Score)
			}
			if α >= β {
				return hit, nil
			}
		}
	}

	moves := s.game.LegalMoves(pos)
	if len(moves) == 0 {
		return nodeResult[M]{}, fmt.Errorf("%w (depth %d)", ErrNoLegalMoves, depth)
	}
	moves = s.orderer.Order(s.game, pos, moves)

	best := nodeResult[M]{score: math.Inf(-1)}
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		child, err := s.negamax(ctx, s.game.Apply(pos, m), depth+1, -β, -α)
		if err != nil {
			return best, err
		}
		if v := -child.score; !best.hasMove || v > best.score {
			best = nodeResult[M]{score: v, move: m, hasMove: true}
		}
		α = math.Max(α, best.score)
		if best.score >= β {
			break // beta cut-off
		}
	}

	if s.transpositionTableOptim {
		entry := CacheEntry[M]{
			Score:   best.score,
			Move:    best.move,
			HasMove: true,
			Depth:   depth,
		}
		switch {
		case best.score <= alphaOrig:
			entry.Bound = Upper
		case best.score >= β:
			entry.Bound = Lower
		default:
			entry.Bound = Exact
		}
		s.ttable.record(nodeKey, entry)
	}
	return best, nil
}
