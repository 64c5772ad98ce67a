package heuristic

import (
	"github.com/domino14/abalone/board"
)

// A Term is one sub-heuristic. Value is always "own minus opponent" (or the
// reverse for quantities where less is better), so every term, and the
// weighted sum of terms, flips sign when side is swapped.
type Term interface {
	Name() string
	Value(b *board.Board, side board.Color) float64
}

var centerDistance [board.NumCells]float64

func init() {
	for i := range centerDistance {
		centerDistance[i] = board.CoordOf(i).Distance(board.Center)
	}
}

// MaterialTerm is the difference in marbles on the board.
type MaterialTerm struct{}

func (MaterialTerm) Name() string { return "material" }

func (MaterialTerm) Value(b *board.Board, side board.Color) float64 {
	return float64(b.Count(side) - b.Count(side.Other()))
}

// CentralityTerm rewards being closer to the centre than the opponent: it is
// the opponent's summed distance to the centre minus our own.
type CentralityTerm struct{}

func (CentralityTerm) Name() string { return "centrality" }

func (CentralityTerm) Value(b *board.Board, side board.Color) float64 {
	return totalDistance(b, side.Other()) - totalDistance(b, side)
}

func totalDistance(b *board.Board, c board.Color) float64 {
	want := board.Marble(c)
	total := 0.0
	for i := 0; i < board.NumCells; i++ {
		if b.At(i) == want {
			total += centerDistance[i]
		}
	}
	return total
}

// CohesionTerm counts, for every marble, its same-colored neighbours in all
// six directions.
type CohesionTerm struct{}

func (CohesionTerm) Name() string { return "cohesion" }

func (CohesionTerm) Value(b *board.Board, side board.Color) float64 {
	return float64(cohesion(b, side) - cohesion(b, side.Other()))
}

func cohesion(b *board.Board, c board.Color) int {
	want := board.Marble(c)
	n := 0
	for i := 0; i < board.NumCells; i++ {
		if b.At(i) != want {
			continue
		}
		for d := board.Direction(0); d < board.NumDirections; d++ {
			if nb := board.Neighbor(i, d); nb >= 0 && b.At(nb) == want {
				n++
			}
		}
	}
	return n
}

// AlignmentTerm rewards compact lines of three and penalizes a fourth marble
// extending such a line outward.
type AlignmentTerm struct{}

func (AlignmentTerm) Name() string { return "alignment" }

func (AlignmentTerm) Value(b *board.Board, side board.Color) float64 {
	return float64(alignment(b, side) - alignment(b, side.Other()))
}

func alignment(b *board.Board, c board.Color) int {
	want := board.Marble(c)
	is := func(idx int) bool {
		return idx >= 0 && b.At(idx) == want
	}
	score := 0
	for i := 0; i < board.NumCells; i++ {
		if b.At(i) != want {
			continue
		}
		for _, axis := range board.Axes {
			back := axis.Opposite()
			fwd, bwd := board.Neighbor(i, axis), board.Neighbor(i, back)
			switch {
			case is(fwd) && is(bwd):
				score += 2
				if is(board.Neighbor(fwd, axis)) || is(board.Neighbor(bwd, back)) {
					score -= 2
				}
			case is(fwd) || is(bwd):
				score++
			}
		}
	}
	return score
}
