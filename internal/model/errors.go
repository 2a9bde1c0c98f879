package model

import "errors"

var (
	// ErrOutOfBounds is raised when a position outside the board reaches a
	// lookup that requires a valid square.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrOutOfSequence means a move was applied or undone out of order with
	// the board's ply counter. It always indicates a bug in the caller.
	ErrOutOfSequence = errors.New("move applied out of sequence")
	// ErrWrongColor is raised when a color-specific helper receives a piece
	// of the other color.
	ErrWrongColor = errors.New("piece has the wrong color")
)

var (
	ErrGameFull    = errors.New("game is full")
	ErrNotSeated   = errors.New("player not in game")
	ErrNotYourTurn = errors.New("not your turn")
)

// ErrAlreadyQueued is returned when a player joins matchmaking twice.
var ErrAlreadyQueued = errors.New("player already in queue")
