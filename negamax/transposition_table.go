package negamax

import (
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Bound says how a stored score relates to the true value of the node.
type Bound uint8

const (
	// Exact scores were searched with the full window.
	Exact Bound = iota + 1
	// Lower scores failed high: the true value is at least Score.
	Lower
	// Upper scores failed low: the true value is at most Score.
	Upper
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	}
	return "invalid"
}

// ReplacementPolicy decides what happens when a fingerprint that is already
// in the table gets recorded again.
type ReplacementPolicy int

const (
	// KeepMostSearched keeps an entry recorded closer to the root than the
	// new one, since it had more plies of search below it.
	KeepMostSearched ReplacementPolicy = iota
	// AlwaysReplace lets the most recent write win.
	AlwaysReplace
)

// entrySize is a rough estimate of what one entry costs in the map,
// including its key and bucket overhead.
const entrySize = 64

// CacheEntry is the result of searching one node. Depth is the node's
// distance from the root when it was searched.
type CacheEntry[M comparable] struct {
	Score   float64
	Move    M
	HasMove bool
	Depth   int
	Bound   Bound
}

// TableStats is a snapshot of the table's counters.
type TableStats struct {
	Entries  int
	Created  uint64
	Lookups  uint64
	Hits     uint64
	Replaced uint64
	Skipped  uint64
	Clears   uint64
}

// TranspositionTable maps position fingerprints to search results. It is
// meant to be owned by one searcher; the counters are atomic so that
// they can be read while a search runs.
type TranspositionTable[M comparable] struct {
	table      map[uint64]CacheEntry[M]
	policy     ReplacementPolicy
	maxEntries int

	created  atomic.Uint64
	lookups  atomic.Uint64
	hits     atomic.Uint64
	replaced atomic.Uint64
	skipped  atomic.Uint64
	clears   atomic.Uint64
}

func NewTranspositionTable[M comparable](policy ReplacementPolicy) *TranspositionTable[M] {
	return &TranspositionTable[M]{
		table:  make(map[uint64]CacheEntry[M]),
		policy: policy,
	}
}

// SetMemoryFraction caps the table at roughly fraction of total system
// memory. Zero means no cap.
func (t *TranspositionTable[M]) SetMemoryFraction(fraction float64) {
	if fraction <= 0 {
		t.maxEntries = 0
		return
	}
	totalMem := memory.TotalMemory()
	t.maxEntries = int(fraction * float64(totalMem) / entrySize)
	if t.maxEntries < 1 {
		t.maxEntries = 1
	}
	log.Debug().Int("max-entries", t.maxEntries).
		Uint64("total-system-memory-bytes", totalMem).
		Int("estimated-total-memory-bytes", t.maxEntries*entrySize).
		Msg("transposition-table-size")
}

// SetMaxEntries caps the table at n entries. Zero means no cap.
func (t *TranspositionTable[M]) SetMaxEntries(n int) {
	t.maxEntries = n
}

func (t *TranspositionTable[M]) SetReplacementPolicy(p ReplacementPolicy) {
	t.policy = p
}

// lookup returns the entry for fp if it was recorded at most depth plies
// from the root, so that it was searched at least as deeply as a search
// from depth would be.
func (t *TranspositionTable[M]) lookup(fp uint64, depth int) (CacheEntry[M], bool) {
	t.lookups.Add(1)
	e, ok := t.table[fp]
	if !ok || e.Depth > depth {
		return CacheEntry[M]{}, false
	}
	t.hits.Add(1)
	return e, true
}

func (t *TranspositionTable[M]) record(fp uint64, e CacheEntry[M]) {
	old, exists := t.table[fp]
	if exists {
		if t.policy == KeepMostSearched && old.Depth < e.Depth {
			t.skipped.Add(1)
			return
		}
		t.replaced.Add(1)
	} else if t.maxEntries > 0 && len(t.table) >= t.maxEntries {
		log.Debug().Int("entries", len(t.table)).Msg("transposition-table-full")
		clear(t.table)
		t.clears.Add(1)
	}
	t.table[fp] = e
	t.created.Add(1)
}

// Reset empties the table and zeroes its counters.
func (t *TranspositionTable[M]) Reset() {
	clear(t.table)
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.replaced.Store(0)
	t.skipped.Store(0)
	t.clears.Store(0)
}

func (t *TranspositionTable[M]) Len() int {
	return len(t.table)
}

func (t *TranspositionTable[M]) Stats() TableStats {
	return TableStats{
		Entries:  len(t.table),
		Created:  t.created.Load(),
		Lookups:  t.lookups.Load(),
		Hits:     t.hits.Load(),
		Replaced: t.replaced.Load(),
		Skipped:  t.skipped.Load(),
		Clears:   t.clears.Load(),
	}
}
