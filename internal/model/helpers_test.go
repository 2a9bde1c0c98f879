package model

import (
	"reflect"
	"testing"
)

func pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// setup places pieces on an otherwise empty board.
func setup(pieces map[Position]*Piece) *BoardState {
	b := NewEmptyBoard()
	for p, piece := range pieces {
		b.Place(p, piece)
	}
	return b
}

func moved(t PieceType, c Color) *Piece {
	p := NewPiece(t, c)
	p.HasMoved = true
	return p
}

func findMove(moves []*Move, to Position) *Move {
	for _, m := range moves {
		if m.To == to {
			return m
		}
	}
	return nil
}

func countKind(moves []*Move, kind MoveKind) int {
	n := 0
	for _, m := range moves {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

func mustApply(t *testing.T, b *BoardState, m *Move) []UIChange {
	t.Helper()
	changes, err := m.Apply(b)
	if err != nil {
		t.Fatalf("apply %s: %v", m, err)
	}
	return changes
}

func mustUndo(t *testing.T, b *BoardState, m *Move) []UIChange {
	t.Helper()
	changes, err := m.Undo(b)
	if err != nil {
		t.Fatalf("undo %s: %v", m, err)
	}
	return changes
}

// playMove finds the legal move from -> to and applies it.
func playMove(t *testing.T, b *BoardState, from, to Position) *Move {
	t.Helper()
	sq, _ := b.Get(from)
	m := findMove(LegalMoves(sq, b), to)
	if m == nil {
		t.Fatalf("no legal move %s-%s", from, to)
	}
	mustApply(t, b, m)
	return m
}

// assertRoundTrip applies and undoes every legal move of every piece and
// checks the board comes back identical, square objects included.
func assertRoundTrip(t *testing.T, b *BoardState) {
	t.Helper()
	for _, sq := range b.squares {
		for _, m := range LegalMoves(sq, b) {
			before := b.Snapshot()
			slots := b.squares
			mustApply(t, b, m)
			mustUndo(t, b, m)
			if b.squares != slots {
				t.Fatalf("%s: square objects not restored", m)
			}
			if after := b.Snapshot(); !reflect.DeepEqual(before, after) {
				t.Fatalf("%s: board changed after undo\nbefore %+v\nafter  %+v", m, before, after)
			}
			for i, s := range b.squares {
				if s.Position != positionFromIndex(i) {
					t.Fatalf("%s: square in slot %d reports %s", m, i, s.Position)
				}
			}
		}
	}
}
