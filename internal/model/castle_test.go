package model

import (
	"testing"
)

func castleBoard(extra map[Position]*Piece) *BoardState {
	pieces := map[Position]*Piece{
		pos(4, 7): NewPiece(King, White),
		pos(7, 7): NewPiece(Rook, White),
		pos(4, 0): NewPiece(King, Black),
	}
	for p, piece := range extra {
		pieces[p] = piece
	}
	return setup(pieces)
}

func castles(b *BoardState, kingAt Position) []*Move {
	sq, _ := b.Get(kingAt)
	out := []*Move{}
	for _, m := range LegalMoves(sq, b) {
		if m.Kind == MoveKindCastle {
			out = append(out, m)
		}
	}
	return out
}

func TestKingsideCastle(t *testing.T) {
	b := castleBoard(nil)
	kingSq, _ := b.Get(pos(4, 7))
	rookSq, _ := b.Get(pos(7, 7))
	king, rook := kingSq.Piece, rookSq.Piece

	moves := castles(b, pos(4, 7))
	if len(moves) != 1 {
		t.Fatalf("want 1 castle, got %d", len(moves))
	}
	m := moves[0]
	if m.To != pos(6, 7) {
		t.Fatalf("king destination: want g1, got %s", m.To)
	}

	mustApply(t, b, m)
	if sq, _ := b.Get(pos(6, 7)); sq.Piece != king {
		t.Error("king not on g1")
	}
	if sq, _ := b.Get(pos(5, 7)); sq.Piece != rook {
		t.Error("rook not on f1")
	}
	for _, x := range []int{4, 7} {
		if sq, _ := b.Lookup(x, 7); !sq.IsEmpty() {
			t.Errorf("(%d,7) should be empty", x)
		}
	}
	if !king.HasMoved || !rook.HasMoved {
		t.Error("king and rook should be marked as moved")
	}
	kingAfter, _ := b.KingSquare(White)
	if kingAfter.Position != pos(6, 7) {
		t.Fatalf("king cache: want g1, got %s", kingAfter.Position)
	}
	if b.IsAttacked(kingAfter.Position, Black) {
		t.Error("g1 should not be attacked")
	}
	if b.Ply() != 1 {
		t.Errorf("castling is one ply, got %d", b.Ply())
	}

	mustUndo(t, b, m)
	if king.HasMoved || rook.HasMoved {
		t.Error("undo should clear both has-moved flags")
	}
	if sq, _ := b.KingSquare(White); sq.Position != pos(4, 7) {
		t.Errorf("king cache after undo: got %s", sq.Position)
	}
}

func TestQueensideCastle(t *testing.T) {
	b := castleBoard(map[Position]*Piece{
		pos(0, 7): NewPiece(Rook, White),
		// b1 may be attacked, the king never crosses it.
		pos(1, 0): NewPiece(Rook, Black),
	})

	moves := castles(b, pos(4, 7))
	if len(moves) != 2 {
		t.Fatalf("want 2 castles, got %d", len(moves))
	}
	queenside := findMove(moves, pos(2, 7))
	if queenside == nil {
		t.Fatal("no queenside castle")
	}
	mustApply(t, b, queenside)
	if sq, _ := b.Get(pos(3, 7)); !sq.holds(Rook, White) {
		t.Error("rook not on d1")
	}
	if sq, _ := b.Get(pos(2, 7)); !sq.holds(King, White) {
		t.Error("king not on c1")
	}
}

func TestCastleRefused(t *testing.T) {
	cases := []struct {
		name  string
		extra map[Position]*Piece
		prep  func(t *testing.T, b *BoardState)
	}{
		{
			name:  "king in check",
			extra: map[Position]*Piece{pos(4, 2): NewPiece(Rook, Black)},
		},
		{
			name:  "transit square attacked",
			extra: map[Position]*Piece{pos(5, 2): NewPiece(Rook, Black)},
		},
		{
			name:  "destination attacked",
			extra: map[Position]*Piece{pos(6, 2): NewPiece(Rook, Black)},
		},
		{
			name:  "path blocked",
			extra: map[Position]*Piece{pos(6, 7): NewPiece(Knight, White)},
		},
		{
			name:  "rook has moved",
			extra: map[Position]*Piece{pos(7, 7): moved(Rook, White)},
		},
		{
			name:  "king has moved",
			extra: map[Position]*Piece{pos(4, 7): moved(King, White)},
		},
		{
			name:  "opposing rook",
			extra: map[Position]*Piece{pos(7, 7): NewPiece(Rook, Black)},
		},
		{
			name: "king moved and returned",
			prep: func(t *testing.T, b *BoardState) {
				playMove(t, b, pos(4, 7), pos(4, 6))
				playMove(t, b, pos(4, 0), pos(4, 1))
				playMove(t, b, pos(4, 6), pos(4, 7))
			},
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := castleBoard(tt.extra)
			if tt.prep != nil {
				tt.prep(t, b)
			}
			if n := len(castles(b, pos(4, 7))); n != 0 {
				t.Errorf("want no castle, got %d", n)
			}
		})
	}
}

func TestQueensideNeedsEmptyBFile(t *testing.T) {
	b := castleBoard(map[Position]*Piece{
		pos(0, 7): NewPiece(Rook, White),
		pos(1, 7): NewPiece(Knight, White),
	})

	moves := castles(b, pos(4, 7))
	if len(moves) != 1 || moves[0].To != pos(6, 7) {
		t.Fatalf("want only the kingside castle, got %v", moves)
	}
}

func TestCastleProbeLeavesBoardUntouched(t *testing.T) {
	b := castleBoard(map[Position]*Piece{pos(0, 7): NewPiece(Rook, White)})
	before := b.Snapshot()
	castles(b, pos(4, 7))
	if b.Ply() != before.Ply {
		t.Fatalf("probing castles left the ply at %d", b.Ply())
	}
	assertRoundTrip(t, b)
}
