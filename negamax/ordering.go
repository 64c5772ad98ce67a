package negamax

import (
	"github.com/samber/lo"

	"github.com/domino14/abalone/board"
)

const DefaultOrderingThreshold = 10

// MoveOrderer arranges the legal moves of pos before they are searched.
// Implementations must return a permutation of moves.
type MoveOrderer[P any, M comparable] interface {
	Order(g Game[P, M], pos P, moves []M) []M
}

// NaturalOrder keeps the rules engine's enumeration order.
type NaturalOrder[P any, M comparable] struct{}

func (NaturalOrder[P, M]) Order(_ Game[P, M], _ P, moves []M) []M {
	return moves
}

// MaterialOrderer looks one ply ahead once the game has progressed past
// Threshold and searches material-winning moves first, then neutral ones,
// then losing ones. Within each group the enumeration order is kept.
// Early in the game no move changes material, so the lookahead is skipped.
type MaterialOrderer[P any, M comparable] struct {
	Threshold int
}

func (o MaterialOrderer[P, M]) Order(g Game[P, M], pos P, moves []M) []M {
	if g.Progress(pos) < o.Threshold {
		return moves
	}
	side := g.SideToMove(pos)
	before := materialDiff(g.Occupancy(pos), side)
	groups := lo.GroupBy(moves, func(m M) int {
		after := materialDiff(g.Occupancy(g.Apply(pos, m)), side)
		switch {
		case after > before:
			return 1
		case after < before:
			return -1
		}
		return 0
	})
	ordered := make([]M, 0, len(moves))
	ordered = append(ordered, groups[1]...)
	ordered = append(ordered, groups[0]...)
	ordered = append(ordered, groups[-1]...)
	return ordered
}

func materialDiff(occ board.Occupancy, side board.Color) int {
	return board.Material(occ, side) - board.Material(occ, side.Other())
}
