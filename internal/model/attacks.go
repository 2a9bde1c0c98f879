package model

import "fmt"

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = queenDirs
)

// AttackingSquares returns every square the piece on sq threatens, whether or
// not it could legally move there. Squares held by its own side count too.
func AttackingSquares(sq *Square, b *BoardState) []*Square {
	if sq.Piece == nil {
		return nil
	}
	switch sq.Piece.Type {
	case Pawn:
		if sq.Piece.Color == White {
			return whitePawnAttacks(sq, b)
		}
		return blackPawnAttacks(sq, b)
	case Knight:
		return b.offsetSquares(sq.Position, knightDirs)
	case Bishop:
		return b.raySquares(sq.Position, bishopDirs)
	case Rook:
		return b.raySquares(sq.Position, rookDirs)
	case Queen:
		return b.raySquares(sq.Position, queenDirs)
	case King:
		return b.offsetSquares(sq.Position, kingDirs)
	}
	panic(fmt.Sprintf("unknown piece type %q", sq.Piece.Type))
}

// raySquares walks each direction until the edge of the board, stopping at and
// including the first occupied square.
func (b *BoardState) raySquares(from Position, dirs []Position) []*Square {
	squares := []*Square{}
	for _, dir := range dirs {
		target, ok := from.Offset(dir.X, dir.Y)
		for ok {
			sq := b.square(target)
			squares = append(squares, sq)
			if !sq.IsEmpty() {
				break
			}
			target, ok = target.Offset(dir.X, dir.Y)
		}
	}
	return squares
}

func (b *BoardState) offsetSquares(from Position, dirs []Position) []*Square {
	squares := []*Square{}
	for _, dir := range dirs {
		if target, ok := from.Offset(dir.X, dir.Y); ok && target != from {
			squares = append(squares, b.square(target))
		}
	}
	return squares
}

// pawnForward is the row direction a pawn of color c advances in.
func pawnForward(c Color) int {
	switch c {
	case White:
		return -1
	case Black:
		return 1
	}
	panic(fmt.Errorf("pawn without color: %w", ErrWrongColor))
}

func mustBeColor(sq *Square, c Color) {
	if sq.Color() != c {
		panic(fmt.Errorf("%s piece on %s, want %s: %w", sq.Color(), sq.Position, c, ErrWrongColor))
	}
}

func whitePawnAttacks(sq *Square, b *BoardState) []*Square {
	mustBeColor(sq, White)
	return b.offsetSquares(sq.Position, []Position{{X: -1, Y: -1}, {X: 1, Y: -1}})
}

func blackPawnAttacks(sq *Square, b *BoardState) []*Square {
	mustBeColor(sq, Black)
	return b.offsetSquares(sq.Position, []Position{{X: -1, Y: 1}, {X: 1, Y: 1}})
}
