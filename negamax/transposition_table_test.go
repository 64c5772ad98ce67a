package negamax

import (
	"testing"

	"github.com/matryer/is"
)

func TestLookupRespectsDepth(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable[int](KeepMostSearched)
	tt.record(0xabc, CacheEntry[int]{Score: 12, Move: 3, HasMove: true, Depth: 3, Bound: Exact})

	// an entry searched from depth 3 may answer queries from depth 3 or
	// deeper, never from closer to the root.
	for _, d := range []int{3, 4} {
		e, ok := tt.lookup(0xabc, d)
		is.True(ok)
		is.Equal(e.Score, 12.0)
		is.Equal(e.Move, 3)
	}
	for _, d := range []int{0, 2} {
		_, ok := tt.lookup(0xabc, d)
		is.True(!ok)
	}
	_, ok := tt.lookup(0xdef, 10)
	is.True(!ok)

	stats := tt.Stats()
	is.Equal(stats.Lookups, uint64(5))
	is.Equal(stats.Hits, uint64(2))
}

func TestReplacementPolicies(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable[int](KeepMostSearched)
	tt.record(1, CacheEntry[int]{Score: 1, Depth: 1, Bound: Exact})
	tt.record(1, CacheEntry[int]{Score: 2, Depth: 3, Bound: Exact})
	e, ok := tt.lookup(1, 5)
	is.True(ok)
	is.Equal(e.Score, 1.0) // shallower search was kept
	is.Equal(tt.Stats().Skipped, uint64(1))

	tt.record(1, CacheEntry[int]{Score: 3, Depth: 1, Bound: Lower})
	e, _ = tt.lookup(1, 5)
	is.Equal(e.Score, 3.0) // same depth, most recent wins
	is.Equal(e.Bound, Lower)

	tt.SetReplacementPolicy(AlwaysReplace)
	tt.record(1, CacheEntry[int]{Score: 4, Depth: 4, Bound: Exact})
	e, _ = tt.lookup(1, 5)
	is.Equal(e.Score, 4.0)
	is.Equal(tt.Stats().Replaced, uint64(2))
}

func TestTableCap(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable[int](KeepMostSearched)
	tt.SetMaxEntries(2)
	tt.record(1, CacheEntry[int]{Depth: 1, Bound: Exact})
	tt.record(2, CacheEntry[int]{Depth: 1, Bound: Exact})
	// overwriting an existing key does not count against the cap.
	tt.record(2, CacheEntry[int]{Depth: 0, Bound: Exact})
	is.Equal(tt.Len(), 2)

	tt.record(3, CacheEntry[int]{Depth: 1, Bound: Exact})
	is.Equal(tt.Len(), 1)
	is.Equal(tt.Stats().Clears, uint64(1))

	tt.Reset()
	is.Equal(tt.Stats(), TableStats{})
}

func TestMemoryFraction(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable[int](KeepMostSearched)
	tt.SetMemoryFraction(0.01)
	is.True(tt.maxEntries > 0)
	tt.SetMemoryFraction(0)
	is.Equal(tt.maxEntries, 0)
}
