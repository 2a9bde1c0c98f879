package model

type stepKind int

const (
	stepRelocate stepKind = iota
	stepRemove
)

// step is one primitive board edit of a move. Every step is built from the
// board's three storage primitives and is exactly invertible: undo puts the
// same square objects back into the same slots.
type step struct {
	kind stepKind
	from Position
	to   Position
	// origin holds the moving piece (relocate only).
	origin *Square
	// target is the square displaced from `to`: a captured occupant, an empty
	// square, or the pawn removed en passant.
	target *Square
	// blank is the empty square swapped into `to`.
	blank       *Square
	markedMoved bool
}

func relocation(from, to *Square) *step {
	return &step{
		kind:   stepRelocate,
		from:   from.Position,
		to:     to.Position,
		origin: from,
		target: to,
		blank:  newSquare(to.Position),
	}
}

func removal(sq *Square) *step {
	return &step{
		kind:   stepRemove,
		from:   sq.Position,
		to:     sq.Position,
		target: sq,
		blank:  newSquare(sq.Position),
	}
}

func (s *step) apply(b *BoardState) []UIChange {
	if s.kind == stepRemove {
		b.Swap(s.blank)
		return []UIChange{pieceChange(s.to, nil)}
	}

	// Clear the destination, then trade the moving square with the blank.
	b.Swap(s.blank)
	b.SwapPositions(s.from, s.to)
	piece := s.origin.Piece
	if !piece.HasMoved {
		piece.HasMoved = true
		s.markedMoved = true
	}
	return []UIChange{pieceChange(s.from, nil), pieceChange(s.to, piece)}
}

func (s *step) undo(b *BoardState) []UIChange {
	if s.kind == stepRemove {
		b.Swap(s.target)
		return []UIChange{pieceChange(s.to, s.target.Piece)}
	}

	b.SwapPositions(s.to, s.from)
	b.Swap(s.target)
	if s.markedMoved {
		s.origin.Piece.HasMoved = false
		s.markedMoved = false
	}
	return []UIChange{pieceChange(s.from, s.origin.Piece), pieceChange(s.to, s.target.Piece)}
}
