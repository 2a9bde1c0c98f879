package model

// IsAttacked reports whether any piece of color by threatens p.
func (b *BoardState) IsAttacked(p Position, by Color) bool {
	for _, sq := range b.squares {
		if sq.Color() != by {
			continue
		}
		for _, target := range AttackingSquares(sq, b) {
			if target.Position == p {
				return true
			}
		}
	}
	return false
}

// KingSquare returns the square holding the king of color c from the cache.
// It returns false when that side has no king on the board.
func (b *BoardState) KingSquare(c Color) (*Square, bool) {
	sq := b.square(b.kingPosition(c))
	if sq.holds(King, c) {
		return sq, true
	}
	return b.locateKing(c)
}

// IsKingInCheck reports whether the king of color c is attacked. A side
// without a king is never in check.
func (b *BoardState) IsKingInCheck(c Color) bool {
	sq, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return b.IsAttacked(sq.Position, c.Opponent())
}

// LeavesKingInCheck speculatively plays m and reports whether the mover's own
// king is attacked afterwards.
func (b *BoardState) LeavesKingInCheck(m *Move) bool {
	return Speculate(b, m, func(b *BoardState) bool {
		return b.IsKingInCheck(m.Color)
	})
}

// locateKing refreshes the cached king position for c, scanning the board
// when the cache is stale.
func (b *BoardState) locateKing(c Color) (*Square, bool) {
	if sq := b.square(b.kingPosition(c)); sq.holds(King, c) {
		return sq, true
	}
	for _, sq := range b.squares {
		if sq.holds(King, c) {
			b.setKingPosition(c, sq.Position)
			return sq, true
		}
	}
	return nil, false
}

func (b *BoardState) kingPosition(c Color) Position {
	if c == Black {
		return b.blackKingPosition
	}
	return b.whiteKingPosition
}

func (b *BoardState) setKingPosition(c Color, p Position) {
	switch c {
	case White:
		b.whiteKingPosition = p
	case Black:
		b.blackKingPosition = p
	}
}
