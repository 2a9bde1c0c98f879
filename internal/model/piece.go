package model

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
	// None only appears in visual changes for squares that became empty.
	None PieceType = "none"
)

type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// NoPly marks a pawn that has never made a two-square advance.
const NoPly = -1

// Piece is a single chessman. An empty square holds a nil *Piece.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
	// DoubleStepPly is the ply on which this pawn last advanced two squares,
	// or NoPly.
	DoubleStepPly int `json:"doubleStepPly"`
}

func NewPiece(t PieceType, c Color) *Piece {
	return &Piece{Type: t, Color: c, DoubleStepPly: NoPly}
}

// Square is one slot of the board. Its Position always matches the slot the
// board stores it in.
type Square struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

func newSquare(p Position) *Square {
	return &Square{Position: p}
}

func (s *Square) IsEmpty() bool {
	return s.Piece == nil
}

// Color returns the occupant's color, NoColor for an empty square.
func (s *Square) Color() Color {
	if s.Piece == nil {
		return NoColor
	}
	return s.Piece.Color
}

func (s *Square) holds(t PieceType, c Color) bool {
	return s.Piece != nil && s.Piece.Type == t && s.Piece.Color == c
}
