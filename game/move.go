package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/abalone/board"
)

var (
	ErrBadNotation = errors.New("bad move notation")
	ErrIllegalMove = errors.New("illegal move")
)

// A Move shifts a line of one to three marbles of the side to move by one
// cell. The marbles are Tail, Tail+Line, ... (Length of them).
//
// For inline moves Dir == Line and Tail is the rearmost marble. For
// broadside moves Line is one of board.Axes and Dir is off that axis.
// Moves are plain values and compare equal when they describe the same
// action.
type Move struct {
	Tail   int8
	Line   board.Direction
	Length uint8
	Dir    board.Direction
}

// Inline reports whether the marbles move along their own line.
func (m Move) Inline() bool {
	return m.Line.Axis() == m.Dir.Axis()
}

// Cells returns the indexes of the marbles being moved, tail first.
func (m Move) Cells() []int {
	cells := make([]int, 0, m.Length)
	idx := int(m.Tail)
	for i := 0; i < int(m.Length) && idx >= 0; i++ {
		cells = append(cells, idx)
		idx = board.Neighbor(idx, m.Line)
	}
	return cells
}

// head is the marble at the other end of the line from Tail.
func (m Move) head() int {
	cells := m.Cells()
	return cells[len(cells)-1]
}

// String returns the move in the form "E5 NE" or "C3-C5 NW".
func (m Move) String() string {
	tail := board.CoordOf(int(m.Tail)).Notation()
	if m.Length == 1 {
		return tail + " " + m.Dir.String()
	}
	return tail + "-" + board.CoordOf(m.head()).Notation() + " " + m.Dir.String()
}

// ParseMove parses the notation produced by Move.String. The two end cells
// of a line can be given in either order.
func ParseMove(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	dir, err := board.ParseDirection(fields[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	ends := strings.Split(fields[0], "-")
	if len(ends) > 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	from, err := board.ParseCoord(ends[0])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	if len(ends) == 1 {
		return Move{Tail: int8(board.Index(from)), Line: dir, Length: 1, Dir: dir}, nil
	}
	to, err := board.ParseCoord(ends[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrBadNotation, err)
	}
	line, n, ok := board.DirectionBetween(from, to)
	if !ok || n > 2 {
		return Move{}, fmt.Errorf("%w: %s and %s are not ends of a line of up to three marbles",
			ErrBadNotation, ends[0], ends[1])
	}
	length := uint8(n + 1)
	tail := from
	inline := line.Axis() == dir.Axis()
	switch {
	case inline && line != dir:
		// the tail of an inline move is the rearmost marble.
		tail, line = to, dir
	case !inline && line != line.Axis():
		tail, line = to, line.Opposite()
	}
	return Move{Tail: int8(board.Index(tail)), Line: line, Length: length, Dir: dir}, nil
}
