package model

import (
	"fmt"
	"math"
)

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Position addresses a square by column (X) and row (Y). Row 0 is black's
// back rank, row 7 is white's.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPosition returns the position for the given coordinates, or false when
// they fall outside the board.
func NewPosition(x, y int) (Position, bool) {
	p := Position{X: x, Y: y}
	if !p.InBounds() {
		return Position{}, false
	}
	return p, true
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Offset returns the position dx columns and dy rows away, or false when that
// leaves the board.
func (p Position) Offset(dx, dy int) (Position, bool) {
	return NewPosition(p.X+dx, p.Y+dy)
}

// DistanceTo is the euclidean distance between the centers of two squares.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(float64(p.X-o.X), float64(p.Y-o.Y))
}

func (p Position) index() int {
	return p.Y*BoardSize + p.X
}

func positionFromIndex(i int) Position {
	return Position{X: i % BoardSize, Y: i / BoardSize}
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.getSquareNotation()
}
