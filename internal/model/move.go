package model

import "fmt"

type MoveKind int

const (
	MoveKindSimple MoveKind = iota
	MoveKindPawn
	MoveKindKing
	MoveKindCastle
	MoveKindEnPassant
)

func (k MoveKind) String() string {
	switch k {
	case MoveKindSimple:
		return "simple"
	case MoveKindPawn:
		return "pawn"
	case MoveKindKing:
		return "king"
	case MoveKindCastle:
		return "castle"
	case MoveKindEnPassant:
		return "en passant"
	}
	return fmt.Sprintf("MoveKind(%d)", int(k))
}

// Move is a reversible operation on the board it was generated from. It holds
// the squares involved at generation time and the ply it expects the board to
// be at when applied; applying or undoing it at any other ply fails with
// ErrOutOfSequence.
type Move struct {
	Kind  MoveKind
	Color Color
	From  Position
	// To is where the moving piece lands. For castling that is the king.
	To Position

	steps     []*step
	ply       int
	applied   bool
	prevStamp int
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records one executed move for the game history.
type Ply struct {
	Piece          Piece           `json:"piece"`
	Kind           string          `json:"kind"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
}

func newMove(kind MoveKind, b *BoardState, steps ...*step) *Move {
	first := steps[0]
	return &Move{
		Kind:      kind,
		Color:     first.origin.Color(),
		From:      first.from,
		To:        first.to,
		steps:     steps,
		ply:       b.ply,
		prevStamp: NoPly,
	}
}

func newSimpleMove(b *BoardState, from, to *Square) *Move {
	return newMove(MoveKindSimple, b, relocation(from, to))
}

func newPawnMove(b *BoardState, from, to *Square) *Move {
	return newMove(MoveKindPawn, b, relocation(from, to))
}

func newKingMove(b *BoardState, from, to *Square) *Move {
	return newMove(MoveKindKing, b, relocation(from, to))
}

func newCastle(b *BoardState, kingFrom, kingTo, rookFrom, rookTo *Square) *Move {
	return newMove(MoveKindCastle, b, relocation(kingFrom, kingTo), relocation(rookFrom, rookTo))
}

func newEnPassant(b *BoardState, from, to, captured *Square) *Move {
	return newMove(MoveKindEnPassant, b, relocation(from, to), removal(captured))
}

func (m *Move) String() string {
	return fmt.Sprintf("%s %s-%s", m.Kind, m.From, m.To)
}

func (m *Move) isDoubleStep() bool {
	return m.Kind == MoveKindPawn && abs(m.To.Y-m.From.Y) == 2
}

func (m *Move) movesKing() bool {
	return m.Kind == MoveKindKing || m.Kind == MoveKindCastle
}

// Apply executes the move and returns the visual changes it produced.
func (m *Move) Apply(b *BoardState) ([]UIChange, error) {
	if m.applied || b.ply != m.ply {
		return nil, fmt.Errorf("apply %s at ply %d, built for ply %d: %w", m, b.ply, m.ply, ErrOutOfSequence)
	}

	if m.isDoubleStep() {
		pawn := m.steps[0].origin.Piece
		m.prevStamp = pawn.DoubleStepPly
		pawn.DoubleStepPly = b.ply
	}
	changes := []UIChange{}
	for _, s := range m.steps {
		changes = append(changes, s.apply(b)...)
	}
	b.ply++
	m.applied = true

	if m.movesKing() {
		b.setKingPosition(m.Color, m.To)
		b.locateKing(m.Color)
	}
	return changes, nil
}

// Undo reverts an applied move, restoring every square, flag and stamp it
// touched, and returns the visual changes.
func (m *Move) Undo(b *BoardState) ([]UIChange, error) {
	if !m.applied || b.ply != m.ply+1 {
		return nil, fmt.Errorf("undo %s at ply %d, built for ply %d: %w", m, b.ply, m.ply, ErrOutOfSequence)
	}

	b.ply--
	changes := []UIChange{}
	for i := len(m.steps) - 1; i >= 0; i-- {
		changes = append(changes, m.steps[i].undo(b)...)
	}
	if m.isDoubleStep() {
		m.steps[0].origin.Piece.DoubleStepPly = m.prevStamp
		m.prevStamp = NoPly
	}
	m.applied = false

	if m.movesKing() {
		b.setKingPosition(m.Color, m.From)
		b.locateKing(m.Color)
	}
	return changes, nil
}

// Speculate applies m, evaluates probe on the resulting position and undoes m
// again. A sequencing failure here is a bug in move generation and panics.
func Speculate(b *BoardState, m *Move, probe func(*BoardState) bool) bool {
	if _, err := m.Apply(b); err != nil {
		panic(err)
	}
	result := probe(b)
	if _, err := m.Undo(b); err != nil {
		panic(err)
	}
	return result
}

// record describes an applied move; the piece is copied as it stands after
// the move.
func (m *Move) record() Ply {
	mover := m.steps[0].origin.Piece
	ply := Ply{
		Piece: *mover,
		Kind:  m.Kind.String(),
		From:  m.From,
		To:    m.To,
	}
	switch m.Kind {
	case MoveKindCastle:
		rook := m.steps[1]
		ply.CastleRookMove = &CastleRookMove{From: rook.from, To: rook.to}
	case MoveKindEnPassant:
		ply.CapturedPiece = m.steps[1].target.Piece
	default:
		ply.CapturedPiece = m.steps[0].target.Piece
	}
	return ply
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
