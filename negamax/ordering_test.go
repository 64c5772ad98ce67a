package negamax

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestFixedDepth(t *testing.T) {
	is := is.New(t)
	c := FixedDepth{MaxDepth: 2}
	is.True(!c.ShouldStop(2, 1000))
	is.True(c.ShouldStop(3, 0))
}

func TestGameLengthAware(t *testing.T) {
	c := GameLengthAware{MaxDepth: 2, MaxProgress: 50}
	assert.False(t, c.ShouldStop(1, 49))
	assert.True(t, c.ShouldStop(1, 50))
	assert.True(t, c.ShouldStop(3, 10))

	unbounded := GameLengthAware{MaxDepth: 2}
	assert.False(t, unbounded.ShouldStop(1, 1000))
}

func orderingTree() *treeGame {
	const root = 0b111 | 0b11<<16 // three black, two white
	return &treeGame{nodes: []treeNode{
		{children: []int{1, 2, 3, 4, 5}, mask: root},
		{mask: 0b1110 | 0b11<<16},  // neutral
		{mask: 0b111 | 0b1<<16},    // pushes one off
		{mask: 0b11 | 0b11<<16},    // loses one
		{mask: 0b111},              // pushes both off
		{mask: 0b10101 | 0b11<<16}, // neutral
	}}
}

func TestMaterialOrdering(t *testing.T) {
	is := is.New(t)
	g := orderingTree()
	o := MaterialOrderer[treePos, int]{Threshold: 10}
	moves := g.LegalMoves(treePos{ply: 10})

	ordered := o.Order(g, treePos{ply: 10}, moves)
	is.Equal(ordered, []int{2, 4, 1, 5, 3})

	// below the threshold the enumeration order is kept.
	is.Equal(o.Order(g, treePos{ply: 9}, moves), []int{1, 2, 3, 4, 5})

	// White to move sees the same moves the other way round.
	ordered = o.Order(g, treePos{ply: 11}, moves)
	is.Equal(ordered, []int{3, 1, 5, 2, 4})
}

func TestOrderingKeepsAllMoves(t *testing.T) {
	g := orderingTree()
	o := MaterialOrderer[treePos, int]{}
	moves := g.LegalMoves(treePos{})
	ordered := o.Order(g, treePos{}, moves)
	assert.ElementsMatch(t, moves, ordered)

	before := materialOf(g.nodes[0].mask)
	gain := func(id int) int {
		d := materialOf(g.nodes[id].mask) - before
		switch {
		case d > 0:
			return 1
		case d < 0:
			return -1
		}
		return 0
	}
	for i := 1; i < len(ordered); i++ {
		assert.GreaterOrEqual(t, gain(ordered[i-1]), gain(ordered[i]))
	}
}
