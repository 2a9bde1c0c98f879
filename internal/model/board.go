package model

// BoardState owns the 64 squares of a game, the cached king positions and the
// ply counter that sequences move application.
type BoardState struct {
	squares           [BoardSize * BoardSize]*Square
	whiteKingPosition Position
	blackKingPosition Position
	ply               int
}

// BoardView is a detached copy of a board, safe to serialize or compare.
type BoardView struct {
	Board             [][]*Piece `json:"board"`
	BlackKingPosition Position   `json:"blackKingPosition"`
	WhiteKingPosition Position   `json:"whiteKingPosition"`
	Ply               int        `json:"ply"`
}

func NewEmptyBoard() *BoardState {
	board := &BoardState{}
	for i := range board.squares {
		board.squares[i] = newSquare(positionFromIndex(i))
	}
	return board
}

// NewBoard returns a board with the standard starting layout.
func NewBoard() *BoardState {
	board := NewEmptyBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, t := range backRank {
		board.Place(Position{X: x, Y: 0}, NewPiece(t, Black))
		board.Place(Position{X: x, Y: 7}, NewPiece(t, White))
	}
	for x := 0; x < BoardSize; x++ {
		board.Place(Position{X: x, Y: 1}, NewPiece(Pawn, Black))
		board.Place(Position{X: x, Y: 6}, NewPiece(Pawn, White))
	}
	return board
}

// Place puts a piece (or nil) on a square while setting up a position. It is
// not a move: the ply counter and has-moved flags are left alone.
func (b *BoardState) Place(p Position, piece *Piece) {
	sq := b.square(p)
	sq.Piece = piece
	if piece != nil && piece.Type == King {
		b.setKingPosition(piece.Color, p)
	}
}

// Get returns the square at p, or false when p is off the board.
func (b *BoardState) Get(p Position) (*Square, bool) {
	if !p.InBounds() {
		return nil, false
	}
	return b.squares[p.index()], true
}

// Lookup is Get for raw coordinates.
func (b *BoardState) Lookup(x, y int) (*Square, bool) {
	return b.Get(Position{X: x, Y: y})
}

func (b *BoardState) square(p Position) *Square {
	sq, ok := b.Get(p)
	if !ok {
		panic(ErrOutOfBounds)
	}
	return sq
}

// Swap stores sq in the slot named by its position and returns the square it
// replaced.
func (b *BoardState) Swap(sq *Square) *Square {
	old := b.square(sq.Position)
	b.squares[sq.Position.index()] = sq
	return old
}

// SwapPositions exchanges the squares stored at a and c and updates each
// square's position to match its new slot.
func (b *BoardState) SwapPositions(a, c Position) {
	first, second := b.square(a), b.square(c)
	b.squares[a.index()] = second
	b.squares[c.index()] = first
	second.Position = a
	first.Position = c
}

// Ply is the number of moves currently applied to the board.
func (b *BoardState) Ply() int {
	return b.ply
}

// Snapshot copies the board into a BoardView. Pieces are copied by value so
// later moves do not alter the view.
func (b *BoardState) Snapshot() BoardView {
	view := BoardView{
		Board:             make([][]*Piece, BoardSize),
		WhiteKingPosition: b.whiteKingPosition,
		BlackKingPosition: b.blackKingPosition,
		Ply:               b.ply,
	}
	for y := 0; y < BoardSize; y++ {
		view.Board[y] = make([]*Piece, BoardSize)
		for x := 0; x < BoardSize; x++ {
			if piece := b.squares[y*BoardSize+x].Piece; piece != nil {
				cp := *piece
				view.Board[y][x] = &cp
			}
		}
	}
	return view
}
