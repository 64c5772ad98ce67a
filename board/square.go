package board

import (
	"os"
)

var (
	ColorSupport = os.Getenv("ABALONE_DISABLE_COLOR") != "on"
)

// Color is one of the two sides of the game.
type Color uint8

const (
	Black Color = iota
	White
)

// Other returns the opposing side.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// ParseColor accepts "b", "black", "w" or "white" in any case.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "b", "B", "black", "Black", "BLACK":
		return Black, true
	case "w", "W", "white", "White", "WHITE":
		return White, true
	}
	return Black, false
}

// A Square is the content of a single cell. It is either Empty or holds a
// marble of one color; every other value is invalid and must be rejected by
// anything that reads a board.
type Square uint8

const (
	Empty Square = iota
	BlackMarble
	WhiteMarble
)

// Marble returns the square holding a marble of color c.
func Marble(c Color) Square {
	return Square(c) + 1
}

// Valid reports whether s is one of the three known square values.
func (s Square) Valid() bool {
	return s <= WhiteMarble
}

// Color returns the color of the marble on the square. ok is false for
// empty and invalid squares.
func (s Square) Color() (c Color, ok bool) {
	switch s {
	case BlackMarble:
		return Black, true
	case WhiteMarble:
		return White, true
	}
	return Black, false
}

// Rune is the single-character form used by the text layouts.
func (s Square) Rune() rune {
	switch s {
	case Empty:
		return '.'
	case BlackMarble:
		return 'B'
	case WhiteMarble:
		return 'W'
	}
	return '?'
}

func squareFromRune(r rune) (Square, bool) {
	switch r {
	case '.', 'o', 'O':
		return Empty, true
	case 'B', 'b', 'x', 'X':
		return BlackMarble, true
	case 'W', 'w':
		return WhiteMarble, true
	}
	return Empty, false
}

// DisplayString returns the square as it is shown in a terminal.
func (s Square) DisplayString() string {
	if !ColorSupport {
		return string(s.Rune())
	}
	switch s {
	case BlackMarble:
		return "\033[1;34mB\033[0m"
	case WhiteMarble:
		return "\033[1;33mW\033[0m"
	}
	return string(s.Rune())
}
