package model

// UIChange is one square-level visual delta. A highlight marks a reachable
// destination and carries no piece data; otherwise the change sets the
// rendered occupant of the square.
type UIChange struct {
	Position  Position  `json:"position"`
	PieceType PieceType `json:"pieceType,omitempty"`
	Color     Color     `json:"color,omitempty"`
	Highlight bool      `json:"highlight"`
}

func highlightChange(p Position) UIChange {
	return UIChange{Position: p, Highlight: true}
}

func pieceChange(p Position, piece *Piece) UIChange {
	if piece == nil {
		return UIChange{Position: p, PieceType: None, Color: NoColor}
	}
	return UIChange{Position: p, PieceType: piece.Type, Color: piece.Color}
}
