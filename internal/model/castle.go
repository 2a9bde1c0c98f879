package model

// castleMoves returns one castle per never-moved rook on the king's row that
// the king can legally castle with. Nothing is cached: every call re-checks
// the position.
func castleMoves(kingSq *Square, b *BoardState) []*Move {
	moves := []*Move{}
	king := kingSq.Piece
	opponent := king.Color.Opponent()
	if king.HasMoved || b.IsAttacked(kingSq.Position, opponent) {
		return moves
	}

	row := kingSq.Position.Y
	for x := 0; x < BoardSize; x++ {
		rookSq := b.square(Position{X: x, Y: row})
		if !rookSq.holds(Rook, king.Color) || rookSq.Piece.HasMoved {
			continue
		}
		// Every square between king and rook must be empty, not only the two
		// the king crosses; this is what rules out queenside castling with a
		// piece on b1.
		if !b.rowClearBetween(kingSq.Position, rookSq.Position) {
			continue
		}
		// The king travels two squares; the rook lands on the first one.
		first, ok := b.castlingStep(kingSq.Position, rookSq.Position, opponent)
		if !ok {
			continue
		}
		second, ok := b.castlingStep(first.Position, rookSq.Position, opponent)
		if !ok {
			continue
		}
		castle := newCastle(b, kingSq, second, rookSq, first)
		if b.LeavesKingInCheck(castle) {
			continue
		}
		moves = append(moves, castle)
	}
	return moves
}

// castlingStep picks the king-pattern neighbour of from on the same row that
// is strictly closer to the rook. It must be empty and not attacked. Squares
// the king does not cross are covered by rowClearBetween in castleMoves.
func (b *BoardState) castlingStep(from, rook Position, opponent Color) (*Square, bool) {
	for _, sq := range b.offsetSquares(from, kingDirs) {
		if sq.Position.Y != from.Y || sq.Position.DistanceTo(rook) >= from.DistanceTo(rook) {
			continue
		}
		if !sq.IsEmpty() || b.IsAttacked(sq.Position, opponent) {
			return nil, false
		}
		return sq, true
	}
	return nil, false
}

func (b *BoardState) rowClearBetween(a, c Position) bool {
	lo, hi := a.X, c.X
	if lo > hi {
		lo, hi = hi, lo
	}
	for x := lo + 1; x < hi; x++ {
		if !b.square(Position{X: x, Y: a.Y}).IsEmpty() {
			return false
		}
	}
	return true
}
