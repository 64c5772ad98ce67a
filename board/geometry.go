package board

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// The board is a hexagon with five cells per side. Cells are addressed in a
// "doubled" coordinate system: Y is the row (0 is the top row, I, and 8 is
// the bottom row, A) and X advances by two between horizontal neighbours,
// so that the six neighbours of (x, y) are (x±2, y) and (x±1, y±1).
const (
	Rows     = 9
	Width    = 17
	NumCells = 61
	// SideLength is the number of cells on each edge of the hexagon.
	SideLength = 5
)

// Center is the geometric centre of the board, cell E5.
var Center = Coord{X: 8, Y: 4}

var ErrBadCoord = errors.New("bad coordinate")

// Coord is a cell position in doubled coordinates.
type Coord struct {
	X, Y int
}

// Add returns the neighbouring coordinate in direction d. The result may be
// off the board.
func (c Coord) Add(d Direction) Coord {
	off := offsets[d]
	return Coord{X: c.X + off.X, Y: c.Y + off.Y}
}

// Distance is the Euclidean distance between two coordinates.
func (c Coord) Distance(o Coord) float64 {
	return math.Hypot(float64(c.X-o.X), float64(c.Y-o.Y))
}

// OnBoard reports whether c addresses one of the 61 cells.
func (c Coord) OnBoard() bool {
	if c.Y < 0 || c.Y >= Rows {
		return false
	}
	start := rowOffset(c.Y)
	if c.X < start || c.X > Width-1-start {
		return false
	}
	return (c.X-start)%2 == 0
}

// Notation returns the conventional Abalone name of the cell, e.g. "E5".
// Rows are lettered A (bottom) to I (top); numbers run along the diagonals.
func (c Coord) Notation() string {
	if !c.OnBoard() {
		return fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	k := (c.X - rowOffset(c.Y)) / 2
	return fmt.Sprintf("%c%d", 'A'+rune(Rows-1-c.Y), k+1+firstNumberOffset(c.Y))
}

func (c Coord) String() string {
	return c.Notation()
}

// ParseCoord parses a cell name such as "E5" or "i9".
func ParseCoord(s string) (Coord, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	row := int(s[0] - 'A')
	num := int(s[1] - '0')
	if row < 0 || row >= Rows || num < 1 || num > Rows {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	y := Rows - 1 - row
	k := num - 1 - firstNumberOffset(y)
	c := Coord{X: rowOffset(y) + 2*k, Y: y}
	if k < 0 || !c.OnBoard() {
		return Coord{}, fmt.Errorf("%w: %q is not on the board", ErrBadCoord, s)
	}
	return c, nil
}

// rowOffset is the X coordinate of the first cell of row y.
func rowOffset(y int) int {
	if y < SideLength-1 {
		return SideLength - 1 - y
	}
	return y - (SideLength - 1)
}

// RowLength returns the number of cells in row y.
func RowLength(y int) int {
	return Rows - rowOffset(y)
}

// firstNumberOffset is added to the in-row index to get the diagonal number
// of a cell. The upper rows (F-I) start further along the diagonals.
func firstNumberOffset(y int) int {
	if y < SideLength-1 {
		return SideLength - 1 - y
	}
	return 0
}

// Direction is one of the six hexagonal directions.
type Direction uint8

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
	NumDirections
)

var offsets = [NumDirections]Coord{
	East:      {X: 2, Y: 0},
	NorthEast: {X: 1, Y: -1},
	NorthWest: {X: -1, Y: -1},
	West:      {X: -2, Y: 0},
	SouthWest: {X: -1, Y: 1},
	SouthEast: {X: 1, Y: 1},
}

var directionNames = [NumDirections]string{"E", "NE", "NW", "W", "SW", "SE"}

// Axes lists one direction per principal line of the board. The other half
// of each axis is its Opposite.
var Axes = [3]Direction{East, NorthEast, NorthWest}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 3) % NumDirections
}

// Axis returns the canonical (East, NorthEast or NorthWest) direction of the
// line d lies on.
func (d Direction) Axis() Direction {
	return d % 3
}

func (d Direction) String() string {
	if d >= NumDirections {
		return "?"
	}
	return directionNames[d]
}

// ParseDirection parses E, NE, NW, W, SW or SE.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == s {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrBadCoord, s)
}

// DirectionBetween returns the direction d such that to == from + n*d for
// some n > 0, along with n.
func DirectionBetween(from, to Coord) (Direction, int, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	for d := Direction(0); d < NumDirections; d++ {
		off := offsets[d]
		var n int
		switch {
		case off.Y == 0:
			if dy != 0 || dx%off.X != 0 {
				continue
			}
			n = dx / off.X
		default:
			if dy%off.Y != 0 {
				continue
			}
			n = dy / off.Y
			if dx != n*off.X {
				continue
			}
		}
		if n > 0 {
			return d, n, true
		}
	}
	return 0, 0, false
}

// Precomputed lookup tables between cell indexes and coordinates.
var (
	cellCoords [NumCells]Coord
	cellIndex  [Rows][Width]int8
	neighbors  [NumCells][NumDirections]int8
)

func init() {
	for y := range cellIndex {
		for x := range cellIndex[y] {
			cellIndex[y][x] = -1
		}
	}
	idx := 0
	for y := 0; y < Rows; y++ {
		start := rowOffset(y)
		for k := 0; k < RowLength(y); k++ {
			c := Coord{X: start + 2*k, Y: y}
			cellCoords[idx] = c
			cellIndex[y][c.X] = int8(idx)
			idx++
		}
	}
	if idx != NumCells {
		panic(fmt.Sprintf("board layout has %d cells, expected %d", idx, NumCells))
	}
	for i, c := range cellCoords {
		for d := Direction(0); d < NumDirections; d++ {
			neighbors[i][d] = int8(Index(c.Add(d)))
		}
	}
}

// Index returns the cell index of c, or -1 if c is off the board.
func Index(c Coord) int {
	if c.Y < 0 || c.Y >= Rows || c.X < 0 || c.X >= Width {
		return -1
	}
	return int(cellIndex[c.Y][c.X])
}

// CoordOf returns the coordinate of cell idx.
func CoordOf(idx int) Coord {
	return cellCoords[idx]
}

// Neighbor returns the index of the cell next to idx in direction d, or -1
// when that would leave the board.
func Neighbor(idx int, d Direction) int {
	return int(neighbors[idx][d])
}

// Mirror returns the cell obtained by rotating idx half a turn about the
// centre of the board.
func Mirror(idx int) int {
	c := cellCoords[idx]
	return Index(Coord{X: Width - 1 - c.X, Y: Rows - 1 - c.Y})
}
