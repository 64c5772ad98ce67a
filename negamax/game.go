package negamax

import (
	"github.com/domino14/abalone/board"
)

// Game is everything the solver needs to know about the rules. P is a
// position value and M a move; Apply must not modify its argument.
type Game[P any, M comparable] interface {
	IsTerminal(P) bool
	// TerminalScore is the final score of a finished game for side.
	TerminalScore(P, board.Color) float64
	LegalMoves(P) []M
	Apply(P, M) P
	Occupancy(P) board.Occupancy
	// Progress is a monotone measure of how far the game has gone, usually
	// the number of plies played.
	Progress(P) int
	SideToMove(P) board.Color
}

// Evaluator scores a non-terminal position for side. It must be
// antisymmetric: Score(p, c) == -Score(p, c.Other()).
type Evaluator[P any] interface {
	Score(P, board.Color) float64
}

// EvaluatorFunc adapts a plain function to an Evaluator.
type EvaluatorFunc[P any] func(P, board.Color) float64

func (f EvaluatorFunc[P]) Score(p P, side board.Color) float64 {
	return f(p, side)
}
