package negamax

const DefaultMaxDepth = 2

// CutoffPolicy decides when the search stops expanding and evaluates
// instead. depth counts plies from the root.
type CutoffPolicy interface {
	ShouldStop(depth, progress int) bool
}

// FixedDepth stops below MaxDepth plies.
type FixedDepth struct {
	MaxDepth int
}

func (f FixedDepth) ShouldStop(depth, _ int) bool {
	return depth > f.MaxDepth
}

// GameLengthAware is FixedDepth that also never looks past the last ply of
// a game of MaxProgress plies, for games whose terminal test does not
// count plies. A MaxProgress of zero disables that check.
type GameLengthAware struct {
	MaxDepth    int
	MaxProgress int
}

func (g GameLengthAware) ShouldStop(depth, progress int) bool {
	if depth > g.MaxDepth {
		return true
	}
	return g.MaxProgress > 0 && progress >= g.MaxProgress
}
