package game

import (
	"fmt"

	"github.com/domino14/abalone/board"
)

// MaxLineLength is the longest line of marbles that may move together.
const MaxLineLength = 3

// Rules implements standard Abalone move generation and play. It holds no
// state; its methods are what a search engine needs to explore positions.
type Rules struct{}

func (Rules) IsTerminal(p Position) bool {
	return p.Over()
}

// TerminalScore is +WinScore if side won, -WinScore if it lost and 0 for a
// draw.
func (Rules) TerminalScore(p Position, side board.Color) float64 {
	w, ok := p.Winner()
	switch {
	case !ok:
		return 0
	case w == side:
		return WinScore
	}
	return -WinScore
}

func (Rules) Occupancy(p Position) board.Occupancy {
	b := p.board
	return &b
}

func (Rules) Progress(p Position) int {
	return p.step
}

func (Rules) SideToMove(p Position) board.Color {
	return p.onTurn
}

// LegalMoves enumerates every legal move for the side to move. The order is
// deterministic: by tail cell, then direction, then line length, with
// broadside moves after inline ones for the same tail.
func (Rules) LegalMoves(p Position) []Move {
	own := board.Marble(p.onTurn)
	moves := make([]Move, 0, 64)
	for idx := 0; idx < board.NumCells; idx++ {
		if p.board.At(idx) != own {
			continue
		}
		for d := board.Direction(0); d < board.NumDirections; d++ {
			moves = appendInline(moves, &p.board, idx, d, own)
		}
		for _, axis := range board.Axes {
			moves = appendBroadside(moves, &p.board, idx, axis, own)
		}
	}
	return moves
}

func appendInline(moves []Move, b *board.Board, tail int, d board.Direction, own board.Square) []Move {
	head := tail
	for n := 1; n <= MaxLineLength; n++ {
		if n > 1 {
			head = board.Neighbor(head, d)
			if head < 0 || b.At(head) != own {
				return moves
			}
		}
		if inlineLegal(b, head, d, n, own) {
			moves = append(moves, Move{Tail: int8(tail), Line: d, Length: uint8(n), Dir: d})
		}
	}
	return moves
}

// inlineLegal checks the cells in front of a line of n own marbles whose
// leading marble is at head.
func inlineLegal(b *board.Board, head int, d board.Direction, n int, own board.Square) bool {
	ahead := board.Neighbor(head, d)
	if ahead < 0 {
		// would push our own marble off the board.
		return false
	}
	switch b.At(ahead) {
	case board.Empty:
		return true
	case own:
		return false
	}
	// sumito: push a strictly shorter line of opposing marbles.
	opp := 0
	cur := ahead
	for cur >= 0 && b.At(cur) != board.Empty && b.At(cur) != own {
		opp++
		cur = board.Neighbor(cur, d)
	}
	if opp >= n {
		return false
	}
	// the opposing line must be followed by an empty cell or the edge.
	return cur < 0 || b.At(cur) == board.Empty
}

func appendBroadside(moves []Move, b *board.Board, tail int, axis board.Direction, own board.Square) []Move {
	cells := [MaxLineLength]int{tail}
	for n := 2; n <= MaxLineLength; n++ {
		next := board.Neighbor(cells[n-2], axis)
		if next < 0 || b.At(next) != own {
			return moves
		}
		cells[n-1] = next
		for d := board.Direction(0); d < board.NumDirections; d++ {
			if d.Axis() == axis {
				continue
			}
			if broadsideFree(b, cells[:n], d) {
				moves = append(moves, Move{Tail: int8(tail), Line: axis, Length: uint8(n), Dir: d})
			}
		}
	}
	return moves
}

func broadsideFree(b *board.Board, cells []int, d board.Direction) bool {
	for _, c := range cells {
		to := board.Neighbor(c, d)
		if to < 0 || b.At(to) != board.Empty {
			return false
		}
	}
	return true
}

// Apply plays m, which must be legal in p, and returns the new position.
func (Rules) Apply(p Position, m Move) Position {
	next := p
	b := &next.board
	if m.Inline() {
		// collect the moving chain: our marbles then any pushed ones.
		chain := m.Cells()
		cur := board.Neighbor(chain[len(chain)-1], m.Dir)
		for cur >= 0 && b.At(cur) != board.Empty {
			chain = append(chain, cur)
			cur = board.Neighbor(cur, m.Dir)
		}
		// shift from the front so nothing is overwritten.
		for i := len(chain) - 1; i >= 0; i-- {
			from := chain[i]
			s := b.At(from)
			b.Set(from, board.Empty)
			to := board.Neighbor(from, m.Dir)
			if to < 0 {
				if c, ok := s.Color(); ok {
					next.lost[c]++
				}
				continue
			}
			b.Set(to, s)
		}
	} else {
		cells := m.Cells()
		s := b.At(cells[0])
		for _, c := range cells {
			b.Set(c, board.Empty)
		}
		for _, c := range cells {
			b.Set(board.Neighbor(c, m.Dir), s)
		}
	}
	next.step++
	next.onTurn = p.onTurn.Other()
	return next
}

// Play validates m against the legal moves of p before applying it.
func (r Rules) Play(p Position, m Move) (Position, error) {
	if p.Over() {
		return p, fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	for _, legal := range r.LegalMoves(p) {
		if legal == m {
			return r.Apply(p, m), nil
		}
	}
	return p, fmt.Errorf("%w: %s", ErrIllegalMove, m)
}
