package model

import (
	"errors"
	"testing"
)

func TestRoundTripEveryLegalMove(t *testing.T) {
	castling := setup(map[Position]*Piece{
		pos(4, 7): NewPiece(King, White),
		pos(0, 7): NewPiece(Rook, White),
		pos(7, 7): NewPiece(Rook, White),
		pos(4, 0): NewPiece(King, Black),
		pos(0, 0): NewPiece(Rook, Black),
		pos(7, 0): NewPiece(Rook, Black),
		pos(3, 3): NewPiece(Queen, White),
		pos(5, 2): NewPiece(Knight, Black),
	})

	// Black to capture en passant on the next ply.
	enPassant := setup(map[Position]*Piece{
		pos(4, 7): NewPiece(King, White),
		pos(4, 0): NewPiece(King, Black),
		pos(3, 6): NewPiece(Pawn, White),
		pos(4, 4): moved(Pawn, Black),
	})
	playMove(t, enPassant, pos(3, 6), pos(3, 4))

	midgame := NewBoard()
	playMove(t, midgame, pos(4, 6), pos(4, 4))
	playMove(t, midgame, pos(3, 1), pos(3, 3))
	playMove(t, midgame, pos(4, 4), pos(3, 3))

	boards := map[string]*BoardState{
		"start":      NewBoard(),
		"castling":   castling,
		"en passant": enPassant,
		"midgame":    midgame,
	}
	for name, b := range boards {
		t.Run(name, func(t *testing.T) {
			assertRoundTrip(t, b)
		})
	}
}

func TestSimpleMoveCaptureAndUndo(t *testing.T) {
	b := setup(map[Position]*Piece{
		pos(0, 7): NewPiece(Rook, White),
		pos(0, 2): NewPiece(Knight, Black),
	})
	knight, _ := b.Get(pos(0, 2))
	victim := knight.Piece

	m := playMove(t, b, pos(0, 7), pos(0, 2))
	if sq, _ := b.Get(pos(0, 2)); !sq.holds(Rook, White) {
		t.Fatalf("rook not on a6: %+v", sq.Piece)
	}
	if sq, _ := b.Get(pos(0, 7)); !sq.IsEmpty() {
		t.Fatal("a1 should be empty")
	}
	if b.Ply() != 1 {
		t.Fatalf("ply: want 1, got %d", b.Ply())
	}

	changes := mustUndo(t, b, m)
	if sq, _ := b.Get(pos(0, 2)); sq.Piece != victim {
		t.Fatal("captured knight not restored")
	}
	if sq, _ := b.Get(pos(0, 7)); !sq.holds(Rook, White) || sq.Piece.HasMoved {
		t.Fatalf("rook not restored unmoved: %+v", sq.Piece)
	}
	want := []UIChange{
		{Position: pos(0, 7), PieceType: Rook, Color: White},
		{Position: pos(0, 2), PieceType: Knight, Color: Black},
	}
	if len(changes) != len(want) || changes[0] != want[0] || changes[1] != want[1] {
		t.Errorf("undo changes: want %v, got %v", want, changes)
	}
}

func TestApplyChanges(t *testing.T) {
	b := NewBoard()
	pawn, _ := b.Get(pos(4, 6))
	m := findMove(LegalMoves(pawn, b), pos(4, 4))

	changes := mustApply(t, b, m)
	want := []UIChange{
		{Position: pos(4, 6), PieceType: None, Color: NoColor},
		{Position: pos(4, 4), PieceType: Pawn, Color: White},
	}
	if len(changes) != 2 || changes[0] != want[0] || changes[1] != want[1] {
		t.Errorf("want %v, got %v", want, changes)
	}
}

func TestSequencing(t *testing.T) {
	b := NewBoard()
	e2, _ := b.Get(pos(4, 6))
	d2, _ := b.Get(pos(3, 6))
	e4 := findMove(LegalMoves(e2, b), pos(4, 4))
	d4 := findMove(LegalMoves(d2, b), pos(3, 4))

	if _, err := e4.Undo(b); !errors.Is(err, ErrOutOfSequence) {
		t.Errorf("undo before apply: want ErrOutOfSequence, got %v", err)
	}

	mustApply(t, b, e4)
	if _, err := e4.Apply(b); !errors.Is(err, ErrOutOfSequence) {
		t.Errorf("double apply: want ErrOutOfSequence, got %v", err)
	}
	if _, err := d4.Apply(b); !errors.Is(err, ErrOutOfSequence) {
		t.Errorf("stale move: want ErrOutOfSequence, got %v", err)
	}

	// A move generated on top of e4 must be undone before e4 can be.
	black, _ := b.Get(pos(4, 1))
	e5 := findMove(LegalMoves(black, b), pos(4, 3))
	mustApply(t, b, e5)
	if _, err := e4.Undo(b); !errors.Is(err, ErrOutOfSequence) {
		t.Errorf("undo below top: want ErrOutOfSequence, got %v", err)
	}
	if b.Ply() != 2 {
		t.Errorf("failed calls changed the ply: %d", b.Ply())
	}

	mustUndo(t, b, e5)
	mustUndo(t, b, e4)
	if _, err := e4.Undo(b); !errors.Is(err, ErrOutOfSequence) {
		t.Errorf("double undo: want ErrOutOfSequence, got %v", err)
	}

	// Once undone the move may be applied again.
	mustApply(t, b, e4)
}

func TestSpeculatePanicsOnSequenceError(t *testing.T) {
	b := NewBoard()
	e2, _ := b.Get(pos(4, 6))
	m := findMove(LegalMoves(e2, b), pos(4, 4))
	mustApply(t, b, m)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfSequence) {
			t.Fatalf("want ErrOutOfSequence panic, got %v", r)
		}
	}()
	Speculate(b, m, func(*BoardState) bool { return true })
}

func TestDoubleStepStamp(t *testing.T) {
	b := NewBoard()
	playMove(t, b, pos(6, 7), pos(5, 5)) // Nf3
	playMove(t, b, pos(6, 0), pos(5, 2)) // Nf6

	pawnSq, _ := b.Get(pos(4, 6))
	pawn := pawnSq.Piece
	plyAtMove := b.Ply()
	m := playMove(t, b, pos(4, 6), pos(4, 4))

	if pawn.DoubleStepPly != plyAtMove {
		t.Fatalf("stamp: want %d, got %d", plyAtMove, pawn.DoubleStepPly)
	}

	mustUndo(t, b, m)
	if pawn.DoubleStepPly != NoPly {
		t.Fatalf("stamp after undo: want NoPly, got %d", pawn.DoubleStepPly)
	}
	if pawn.HasMoved {
		t.Fatal("has-moved flag not cleared by undo")
	}

	// A single step leaves the stamp alone.
	playMove(t, b, pos(4, 6), pos(4, 5))
	if pawn.DoubleStepPly != NoPly {
		t.Fatalf("single step stamped the pawn: %d", pawn.DoubleStepPly)
	}
}

func TestHasMovedOnlyClearedByTheMoveThatSetIt(t *testing.T) {
	b := setup(map[Position]*Piece{
		pos(0, 7): NewPiece(Rook, White),
		pos(4, 0): NewPiece(King, Black),
		pos(4, 7): NewPiece(King, White),
	})
	rookSq, _ := b.Get(pos(0, 7))
	rook := rookSq.Piece

	playMove(t, b, pos(0, 7), pos(0, 5))
	playMove(t, b, pos(4, 0), pos(3, 0))
	back := playMove(t, b, pos(0, 5), pos(0, 7))

	mustUndo(t, b, back)
	if !rook.HasMoved {
		t.Error("undoing a later move must not clear the first move's flag")
	}
}
