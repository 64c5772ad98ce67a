package game

import (
	"fmt"
	"strings"

	"github.com/domino14/abalone/board"
)

const (
	// EjectionsToWin is how many marbles a side must push off the board.
	EjectionsToWin = 6
	// DefaultMaxSteps is the total number of plies after which a game is
	// adjudicated on marbles lost.
	DefaultMaxSteps = 50
	// WinScore is the terminal score of a won game. It is larger than any
	// heuristic evaluation.
	WinScore = 1_000_000.0
)

// A Position is an immutable game state. Playing a move returns a new
// Position; the receiver is left untouched.
type Position struct {
	board    board.Board
	onTurn   board.Color
	step     int
	maxSteps int
	lost     [2]int
}

// NewGame returns the classic starting position with black to move.
func NewGame(maxSteps int) Position {
	return NewPosition(board.Classic(), board.Black, 0, maxSteps)
}

// NewPosition builds a position from its parts. Marbles lost so far are
// inferred from the 14 each side starts with.
func NewPosition(b board.Board, onTurn board.Color, step, maxSteps int) Position {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	p := Position{board: b, onTurn: onTurn, step: step, maxSteps: maxSteps}
	for _, c := range []board.Color{board.Black, board.White} {
		if lost := 14 - b.Count(c); lost > 0 {
			p.lost[c] = lost
		}
	}
	return p
}

func (p Position) Board() board.Board {
	return p.board
}

func (p Position) OnTurn() board.Color {
	return p.onTurn
}

// Step is the number of plies played so far.
func (p Position) Step() int {
	return p.step
}

func (p Position) MaxSteps() int {
	return p.maxSteps
}

// Lost returns how many marbles of color c have been pushed off.
func (p Position) Lost(c board.Color) int {
	return p.lost[c]
}

// Marbles returns how many marbles of color c are on the board.
func (p Position) Marbles(c board.Color) int {
	return p.board.Count(c)
}

// Over reports whether the game has ended.
func (p Position) Over() bool {
	return p.lost[board.Black] >= EjectionsToWin ||
		p.lost[board.White] >= EjectionsToWin ||
		p.step >= p.maxSteps
}

// Winner returns the winning side of a finished game. ok is false for a
// draw or an unfinished game. When the ply limit is reached the side that
// lost fewer marbles wins.
func (p Position) Winner() (c board.Color, ok bool) {
	switch {
	case p.lost[board.Black] >= EjectionsToWin:
		return board.White, true
	case p.lost[board.White] >= EjectionsToWin:
		return board.Black, true
	case p.step < p.maxSteps:
		return board.Black, false
	case p.lost[board.Black] < p.lost[board.White]:
		return board.Black, true
	case p.lost[board.White] < p.lost[board.Black]:
		return board.White, true
	}
	return board.Black, false
}

// ToDisplayText renders the board and the game state.
func (p Position) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(p.board.ToDisplayText())
	sb.WriteString(fmt.Sprintf("step %d/%d, %s to move; lost: black %d, white %d\n",
		p.step, p.maxSteps, p.onTurn, p.lost[board.Black], p.lost[board.White]))
	if p.Over() {
		if w, ok := p.Winner(); ok {
			sb.WriteString(fmt.Sprintf("game over: %s wins\n", w))
		} else {
			sb.WriteString("game over: draw\n")
		}
	}
	return sb.String()
}
