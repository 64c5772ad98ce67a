package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadLayout = errors.New("bad board layout")

// Occupancy is the read-only view of a board that hashing and evaluation
// work from.
type Occupancy interface {
	NumCells() int
	At(idx int) Square
}

// A Board holds the content of every cell. The zero value is an empty board.
type Board struct {
	squares [NumCells]Square
}

func (b *Board) NumCells() int {
	return NumCells
}

func (b *Board) At(idx int) Square {
	return b.squares[idx]
}

// Set places s on cell idx.
func (b *Board) Set(idx int, s Square) {
	b.squares[idx] = s
}

// SquareAt returns the content of the cell at c. Off-board coordinates read
// as Empty.
func (b *Board) SquareAt(c Coord) Square {
	idx := Index(c)
	if idx < 0 {
		return Empty
	}
	return b.squares[idx]
}

// Count returns the number of marbles of color c on the board.
func (b *Board) Count(c Color) int {
	return Material(b, c)
}

// Cells returns the indexes of all cells holding a marble of color c.
func (b *Board) Cells(c Color) []int {
	want := Marble(c)
	cells := make([]int, 0, 14)
	for i, s := range b.squares {
		if s == want {
			cells = append(cells, i)
		}
	}
	return cells
}

// Material counts the marbles of color c in any occupancy.
func Material(occ Occupancy, c Color) int {
	want := Marble(c)
	n := 0
	for i := 0; i < occ.NumCells(); i++ {
		if occ.At(i) == want {
			n++
		}
	}
	return n
}

// SwapColors returns the board rotated half a turn with every marble
// changing color. The result is the same position seen from the other side.
func (b *Board) SwapColors() Board {
	var out Board
	for i, s := range b.squares {
		if c, ok := s.Color(); ok {
			out.squares[Mirror(i)] = Marble(c.Other())
		}
	}
	return out
}

// FromRows builds a board from nine row strings, top row (I) first. Each row
// holds one character per cell: B, W or '.'. Whitespace is ignored.
func FromRows(rows []string) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrBadLayout, Rows, len(rows))
	}
	for y, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		if len(row) != RowLength(y) {
			return b, fmt.Errorf("%w: row %c needs %d cells, got %d",
				ErrBadLayout, 'A'+rune(Rows-1-y), RowLength(y), len(row))
		}
		for k, r := range row {
			s, ok := squareFromRune(r)
			if !ok {
				return b, fmt.Errorf("%w: unknown cell content %q", ErrBadLayout, r)
			}
			b.squares[Index(Coord{X: rowOffset(y) + 2*k, Y: y})] = s
		}
	}
	return b, nil
}

// Rows returns the board in the form accepted by FromRows.
func (b *Board) Rows() []string {
	rows := make([]string, Rows)
	for y := 0; y < Rows; y++ {
		var sb strings.Builder
		for k := 0; k < RowLength(y); k++ {
			sb.WriteRune(b.SquareAt(Coord{X: rowOffset(y) + 2*k, Y: y}).Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Classic returns the standard starting layout: black on rows A and B and
// C3-C5, white on rows I and H and G5-G7.
func Classic() Board {
	b, err := FromRows([]string{
		"WWWWW",
		"WWWWWW",
		"..WWW..",
		"........",
		".........",
		"........",
		"..BBB..",
		"BBBBBB",
		"BBBBB",
	})
	if err != nil {
		panic(err)
	}
	return b
}

// BelgianDaisy returns the popular tournament opening layout.
func BelgianDaisy() Board {
	b, err := FromRows([]string{
		"WW.BB",
		"WWWBBB",
		".WW.BB.",
		"........",
		".........",
		"........",
		".BB.WW.",
		"BBBWWW",
		"BB.WW",
	})
	if err != nil {
		panic(err)
	}
	return b
}

// LayoutNamed returns a starting layout by name: "classic" or
// "belgian-daisy".
func LayoutNamed(name string) (Board, error) {
	switch name {
	case "classic":
		return Classic(), nil
	case "belgian-daisy":
		return BelgianDaisy(), nil
	}
	return Board{}, fmt.Errorf("%w: no layout named %q", ErrBadLayout, name)
}

// ToDisplayText renders the board as a hexagon with row letters on the left
// and diagonal numbers along the bottom.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for y := 0; y < Rows; y++ {
		sb.WriteString(strings.Repeat(" ", rowOffset(y)))
		sb.WriteRune('A' + rune(Rows-1-y))
		sb.WriteString(" ")
		for k := 0; k < RowLength(y); k++ {
			if k > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(b.SquareAt(Coord{X: rowOffset(y) + 2*k, Y: y}).DisplayString())
		}
		if y < SideLength-1 {
			sb.WriteString(fmt.Sprintf(" %d", Rows-y))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(" ", SideLength+2))
	for n := 1; n <= SideLength; n++ {
		sb.WriteString(fmt.Sprintf("%d ", n))
	}
	sb.WriteString("\n")
	return sb.String()
}
