package heuristic

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/abalone/board"
)

func boardWith(t *testing.T, black, white []string) *board.Board {
	t.Helper()
	b := &board.Board{}
	for _, n := range black {
		c, err := board.ParseCoord(n)
		if err != nil {
			t.Fatal(err)
		}
		b.Set(board.Index(c), board.BlackMarble)
	}
	for _, n := range white {
		c, err := board.ParseCoord(n)
		if err != nil {
			t.Fatal(err)
		}
		b.Set(board.Index(c), board.WhiteMarble)
	}
	return b
}

func randomBoard(nBlack, nWhite int) *board.Board {
	b := &board.Board{}
	perm := frand.Perm(board.NumCells)
	for i := 0; i < nBlack; i++ {
		b.Set(perm[i], board.BlackMarble)
	}
	for i := nBlack; i < nBlack+nWhite; i++ {
		b.Set(perm[i], board.WhiteMarble)
	}
	return b
}

func TestColorSwapSymmetry(t *testing.T) {
	e := NewEvaluator(DefaultWeights)
	boards := []*board.Board{}
	classic := board.Classic()
	daisy := board.BelgianDaisy()
	boards = append(boards, &classic, &daisy)
	for i := 0; i < 20; i++ {
		boards = append(boards, randomBoard(8+i%6, 14-i%5))
	}
	for _, b := range boards {
		swapped := b.SwapColors()
		assert.InDelta(t, e.Evaluate(b, board.Black), e.Evaluate(&swapped, board.White), 1e-9)
		assert.InDelta(t, e.Evaluate(b, board.White), e.Evaluate(&swapped, board.Black), 1e-9)
		// the evaluation is relative to the side asked about.
		assert.InDelta(t, e.Evaluate(b, board.Black), -e.Evaluate(b, board.White), 1e-9)
	}
}

func TestCentrality(t *testing.T) {
	is := is.New(t)
	e := NewEvaluator(Weights{Centrality: 1})
	b := boardWith(t, []string{"E5"}, []string{"E1"})
	is.Equal(e.Evaluate(b, board.Black), 8.0)
	is.Equal(e.Evaluate(b, board.White), -8.0)
}

func TestCohesionAndAlignment(t *testing.T) {
	is := is.New(t)
	three := boardWith(t, []string{"E4", "E5", "E6"}, nil)
	is.Equal(CohesionTerm{}.Value(three, board.Black), 4.0)
	is.Equal(AlignmentTerm{}.Value(three, board.Black), 4.0)
	is.Equal(AlignmentTerm{}.Value(three, board.White), -4.0)

	// a fourth marble over-extends the line.
	four := boardWith(t, []string{"E3", "E4", "E5", "E6"}, nil)
	is.Equal(CohesionTerm{}.Value(four, board.Black), 6.0)
	is.Equal(AlignmentTerm{}.Value(four, board.Black), 2.0)
}

func TestMaterialDominates(t *testing.T) {
	is := is.New(t)
	e := NewEvaluator(DefaultWeights)
	// black is one marble up but scattered on the rim; white is compact in
	// the centre.
	b := boardWith(t,
		[]string{"A1", "A5", "E1", "E9", "I5", "I9"},
		[]string{"E4", "E5", "E6", "D4", "F5"})
	is.True(e.Evaluate(b, board.Black) > 0)
	is.True(e.Evaluate(b, board.White) < 0)
}

func TestBreakdownSumsToEvaluate(t *testing.T) {
	e := NewEvaluator(DefaultWeights)
	b := randomBoard(11, 9)
	tvs := e.Breakdown(b, board.White)
	assert.Len(t, tvs, 4)
	total := 0.0
	for _, tv := range tvs {
		total += tv.Weighted
	}
	assert.InDelta(t, e.Evaluate(b, board.White), total, 1e-9)
	assert.Contains(t, BreakdownText(tvs), "alignment")

	noAlign := NewEvaluator(Weights{Material: 1})
	assert.Len(t, noAlign.Breakdown(b, board.White), 3)
}
