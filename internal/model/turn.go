package model

import "fmt"

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// TurnController turns pairs of square selections into moves. With nothing
// selected it is idle; after a piece of the side to move is selected the next
// selection is taken as that piece's destination.
type TurnController struct {
	board    *BoardState
	toMove   Color
	selected *Position
	status   Status
	lastMove *SimpleMove
	history  []Ply
}

func NewTurnController(board *BoardState, toMove Color) *TurnController {
	tc := &TurnController{
		board:   board,
		toMove:  toMove,
		history: make([]Ply, 0),
	}
	tc.status = tc.evaluateStatus()
	return tc
}

// OnSquareSelected handles one click. It returns highlight changes when a
// piece is picked up, the move's changes when a move is made, and an empty
// list otherwise. The only error besides an off-board position is a
// sequencing failure, which means the engine itself is broken.
func (tc *TurnController) OnSquareSelected(p Position) ([]UIChange, error) {
	sq, ok := tc.board.Get(p)
	if !ok {
		return nil, fmt.Errorf("select %s: %w", p, ErrOutOfBounds)
	}
	if tc.selected == nil {
		return tc.selectPiece(sq), nil
	}
	from := *tc.selected
	// A failed destination cancels the selection rather than re-prompting.
	tc.selected = nil
	return tc.moveSelected(from, sq)
}

func (tc *TurnController) selectPiece(sq *Square) []UIChange {
	changes := []UIChange{}
	if tc.IsOver() || sq.Color() != tc.toMove {
		return changes
	}
	pos := sq.Position
	tc.selected = &pos

	seen := map[Position]bool{}
	for _, m := range SafeMoves(sq, tc.board) {
		if !seen[m.To] {
			seen[m.To] = true
			changes = append(changes, highlightChange(m.To))
		}
	}
	return changes
}

func (tc *TurnController) moveSelected(from Position, to *Square) ([]UIChange, error) {
	changes := []UIChange{}
	var move *Move
	for _, m := range LegalMoves(tc.board.square(from), tc.board) {
		if m.To == to.Position {
			move = m
			break
		}
	}
	if move == nil || tc.board.LeavesKingInCheck(move) {
		return changes, nil
	}

	changes, err := move.Apply(tc.board)
	if err != nil {
		return nil, err
	}
	tc.history = append(tc.history, move.record())
	tc.lastMove = &SimpleMove{From: move.From, To: move.To}
	tc.toMove = tc.toMove.Opponent()
	tc.status = tc.evaluateStatus()
	return changes, nil
}

// evaluateStatus resolves check, checkmate and stalemate for the side to move.
func (tc *TurnController) evaluateStatus() Status {
	inCheck := tc.board.IsKingInCheck(tc.toMove)
	if !tc.hasSafeMove(tc.toMove) {
		if inCheck {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	if inCheck {
		return StatusCheck
	}
	return StatusOngoing
}

func (tc *TurnController) hasSafeMove(c Color) bool {
	for _, sq := range tc.board.squares {
		if sq.Color() != c {
			continue
		}
		for _, m := range LegalMoves(sq, tc.board) {
			if !tc.board.LeavesKingInCheck(m) {
				return true
			}
		}
	}
	return false
}

func (tc *TurnController) Board() *BoardState {
	return tc.board
}

func (tc *TurnController) ToMove() Color {
	return tc.toMove
}

func (tc *TurnController) Status() Status {
	return tc.status
}

func (tc *TurnController) IsOver() bool {
	return tc.status == StatusCheckmate || tc.status == StatusStalemate
}

// Selected returns the square waiting for a destination, if any.
func (tc *TurnController) Selected() *Position {
	if tc.selected == nil {
		return nil
	}
	p := *tc.selected
	return &p
}

func (tc *TurnController) LastMove() *SimpleMove {
	return tc.lastMove
}

func (tc *TurnController) History() []Ply {
	history := make([]Ply, len(tc.history))
	copy(history, tc.history)
	return history
}
