package zobrist

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/abalone/board"
)

func TestFingerprintDeterminism(t *testing.T) {
	is := is.New(t)
	z := &Hasher{}
	z.Initialize(board.NumCells)

	b1 := board.Classic()
	b2 := board.Classic()
	h1, err := z.Fingerprint(&b1)
	is.NoErr(err)
	h2, err := z.Fingerprint(&b2)
	is.NoErr(err)
	is.Equal(h1, h2)

	var empty board.Board
	h, err := z.Fingerprint(&empty)
	is.NoErr(err)
	is.Equal(h, uint64(0))
}

func TestFingerprintSensitivity(t *testing.T) {
	is := is.New(t)
	z := NewHasher(board.NumCells, "")
	orig := board.Classic()
	h, err := z.Fingerprint(&orig)
	is.NoErr(err)

	for _, idx := range orig.Cells(board.Black) {
		changed := orig
		changed.Set(idx, board.WhiteMarble)
		h2, err := z.Fingerprint(&changed)
		is.NoErr(err)
		is.True(h != h2) // extremely unlikely to collide.
	}
}

func TestToggleMatchesFullHash(t *testing.T) {
	is := is.New(t)
	z := NewHasher(board.NumCells, "")
	b := board.Classic()
	h, err := z.Fingerprint(&b)
	is.NoErr(err)

	from := b.Cells(board.White)[0]
	to := board.Index(board.Center)
	b.Set(from, board.Empty)
	b.Set(to, board.WhiteMarble)
	want, err := z.Fingerprint(&b)
	is.NoErr(err)

	got := z.Toggle(z.Toggle(h, from, board.White), to, board.White)
	is.Equal(got, want)
}

func TestSideToMove(t *testing.T) {
	is := is.New(t)
	z := NewHasher(board.NumCells, "")
	b := board.Classic()
	hb, err := z.Hash(&b, board.Black)
	is.NoErr(err)
	hw, err := z.Hash(&b, board.White)
	is.NoErr(err)
	is.True(hb != hw)
	is.Equal(z.SwitchSides(hb), hw)
	is.Equal(z.SwitchSides(hw), hb)
}

func TestSeededKeys(t *testing.T) {
	is := is.New(t)
	b := board.BelgianDaisy()
	h1, err := NewHasher(board.NumCells, "abalone").Fingerprint(&b)
	is.NoErr(err)
	h2, err := NewHasher(board.NumCells, "abalone").Fingerprint(&b)
	is.NoErr(err)
	h3, err := NewHasher(board.NumCells, "another seed").Fingerprint(&b)
	is.NoErr(err)
	is.Equal(h1, h2)
	is.True(h1 != h3)
}

func TestUnknownOccupant(t *testing.T) {
	is := is.New(t)
	z := NewHasher(board.NumCells, "")
	b := board.Classic()
	b.Set(board.Index(board.Center), board.Square(9))
	_, err := z.Fingerprint(&b)
	is.True(errors.Is(err, ErrUnknownOccupant))

	small := NewHasher(10, "")
	_, err = small.Fingerprint(&b)
	is.True(errors.Is(err, ErrBoardSize))
}
