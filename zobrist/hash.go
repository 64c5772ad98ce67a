package zobrist

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"

	"github.com/domino14/abalone/board"
)

const bignum = 1<<63 - 2

var (
	ErrUnknownOccupant = errors.New("unknown occupant")
	ErrBoardSize       = errors.New("occupancy does not match hasher size")
)

// generate a zobrist hash for a board position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Hasher struct {
	posTable [][2]uint64
	toMove   [2]uint64
	numCells int
}

// keySource is satisfied by *frand.RNG.
type keySource interface {
	Uint64n(n uint64) uint64
}

// Initialize draws fresh random keys for a board of numCells cells.
func (z *Hasher) Initialize(numCells int) {
	z.fill(numCells, frand.New())
}

// InitializeSeeded draws keys from a generator seeded by seed, so two
// hashers built with the same seed agree on every fingerprint.
func (z *Hasher) InitializeSeeded(numCells int, seed string) {
	z.fill(numCells, frand.NewCustom(expandSeed(seed), 1024, 12))
}

// NewHasher returns a hasher for numCells cells. An empty seed means fresh
// random keys.
func NewHasher(numCells int, seed string) *Hasher {
	z := &Hasher{}
	if seed == "" {
		z.Initialize(numCells)
	} else {
		z.InitializeSeeded(numCells, seed)
	}
	return z
}

func (z *Hasher) fill(numCells int, rng keySource) {
	z.numCells = numCells
	z.posTable = make([][2]uint64, numCells)
	for i := 0; i < numCells; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = rng.Uint64n(bignum) + 1
		}
	}
	for j := 0; j < 2; j++ {
		z.toMove[j] = rng.Uint64n(bignum) + 1
	}
}

// expandSeed stretches a text seed into the 32 bytes a ChaCha generator
// wants.
func expandSeed(seed string) []byte {
	out := make([]byte, 32)
	for i := 0; i < 4; i++ {
		h := xxhash.Sum64([]byte(fmt.Sprintf("%d:%s", i, seed)))
		binary.LittleEndian.PutUint64(out[i*8:], h)
	}
	return out
}

func (z *Hasher) NumCells() int {
	return z.numCells
}

// Fingerprint XORs together the key of every occupied cell. Empty cells add
// nothing; anything that is neither empty nor a marble is an error.
func (z *Hasher) Fingerprint(occ board.Occupancy) (uint64, error) {
	if occ.NumCells() != z.numCells {
		return 0, fmt.Errorf("%w: %d cells, hasher has %d", ErrBoardSize, occ.NumCells(), z.numCells)
	}
	key := uint64(0)
	for i := 0; i < z.numCells; i++ {
		sq := occ.At(i)
		if sq == board.Empty {
			continue
		}
		c, ok := sq.Color()
		if !ok {
			return 0, fmt.Errorf("%w: value %d at cell %d", ErrUnknownOccupant, sq, i)
		}
		key ^= z.posTable[i][c]
	}
	return key, nil
}

// Hash is the fingerprint of occ combined with the side to move. The same
// occupancy with a different side to move is a different search node.
func (z *Hasher) Hash(occ board.Occupancy, onTurn board.Color) (uint64, error) {
	key, err := z.Fingerprint(occ)
	if err != nil {
		return 0, err
	}
	return key ^ z.toMove[onTurn], nil
}

// Toggle adds or removes a marble of color c on cell idx. Applying it twice
// is a no-op, which is what makes incremental updates possible.
func (z *Hasher) Toggle(key uint64, idx int, c board.Color) uint64 {
	return key ^ z.posTable[idx][c]
}

// SwitchSides flips the side-to-move component of a Hash key.
func (z *Hasher) SwitchSides(key uint64) uint64 {
	return key ^ z.toMove[board.Black] ^ z.toMove[board.White]
}
