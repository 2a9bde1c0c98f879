package model

import "fmt"

// LegalMoves returns the moves the piece on sq may make according to its own
// movement rules. It does not check whether a move exposes the mover's king;
// see SafeMoves for that.
func LegalMoves(sq *Square, b *BoardState) []*Move {
	if sq.Piece == nil {
		return nil
	}
	switch sq.Piece.Type {
	case Pawn:
		return pawnMoves(sq, b)
	case King:
		return kingMoves(sq, b)
	case Knight, Bishop, Rook, Queen:
		moves := []*Move{}
		for _, target := range AttackingSquares(sq, b) {
			if target.Color() != sq.Piece.Color {
				moves = append(moves, newSimpleMove(b, sq, target))
			}
		}
		return moves
	}
	panic(fmt.Sprintf("unknown piece type %q", sq.Piece.Type))
}

// SafeMoves is LegalMoves without the moves that leave the mover's own king
// attacked.
func SafeMoves(sq *Square, b *BoardState) []*Move {
	safe := []*Move{}
	for _, m := range LegalMoves(sq, b) {
		if !b.LeavesKingInCheck(m) {
			safe = append(safe, m)
		}
	}
	return safe
}

func pawnMoves(sq *Square, b *BoardState) []*Move {
	moves := []*Move{}
	opponent := sq.Piece.Color.Opponent()
	// Pawns capture diagonally and only onto an opposing piece.
	for _, target := range AttackingSquares(sq, b) {
		if target.Color() == opponent {
			moves = append(moves, newPawnMove(b, sq, target))
		}
	}
	moves = append(moves, pawnAdvances(sq, b)...)
	return append(moves, enPassantMoves(sq, b)...)
}

func pawnAdvances(sq *Square, b *BoardState) []*Move {
	moves := []*Move{}
	dir := pawnForward(sq.Piece.Color)
	one, ok := sq.Position.Offset(0, dir)
	if !ok || !b.square(one).IsEmpty() {
		return moves
	}
	moves = append(moves, newPawnMove(b, sq, b.square(one)))
	if sq.Piece.HasMoved {
		return moves
	}
	if two, ok := one.Offset(0, dir); ok && b.square(two).IsEmpty() {
		moves = append(moves, newPawnMove(b, sq, b.square(two)))
	}
	return moves
}

// enPassantMoves captures an adjacent opposing pawn that advanced two squares
// on the ply immediately before this one.
func enPassantMoves(sq *Square, b *BoardState) []*Move {
	moves := []*Move{}
	dir := pawnForward(sq.Piece.Color)
	opponent := sq.Piece.Color.Opponent()
	for _, dx := range []int{-1, 1} {
		side, ok := sq.Position.Offset(dx, 0)
		if !ok {
			continue
		}
		victim := b.square(side)
		if !victim.holds(Pawn, opponent) {
			continue
		}
		if stamp := victim.Piece.DoubleStepPly; stamp == NoPly || stamp != b.ply-1 {
			continue
		}
		beyond, ok := side.Offset(0, dir)
		if !ok || !b.square(beyond).IsEmpty() {
			continue
		}
		moves = append(moves, newEnPassant(b, sq, b.square(beyond), victim))
	}
	return moves
}

func kingMoves(sq *Square, b *BoardState) []*Move {
	moves := []*Move{}
	for _, target := range AttackingSquares(sq, b) {
		if target.Color() != sq.Piece.Color {
			moves = append(moves, newKingMove(b, sq, target))
		}
	}
	return append(moves, castleMoves(sq, b)...)
}
