// Package errors holds the sentinel errors shared by the board, store and
// server packages, plus MoveError which carries the squares involved in a
// rejected move. Inspect them with errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidState indicates a board state string of the wrong length.
	ErrInvalidState = errors.New("invalid board state string")

	// ErrInvalidSquare indicates coordinates outside a1..h8.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidSide indicates a side other than white or black.
	ErrInvalidSide = errors.New("invalid side")

	// ErrIllegalMove indicates a move that is not in the generated move list.
	ErrIllegalMove = errors.New("illegal move")

	// ErrWrongSide indicates an attempt to move the opponent's piece.
	ErrWrongSide = errors.New("piece does not belong to the side to move")

	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrMagicNotFound indicates the magic search ran out of attempts.
	ErrMagicNotFound = errors.New("no magic multiplier found")
)

// MoveError wraps a move rejection with the squares and side involved.
type MoveError struct {
	Err  error
	From string
	To   string
	Side string
}

func (e *MoveError) Error() string {
	if e.Side != "" {
		return fmt.Sprintf("%s%s (%s to move): %v", e.From, e.To, e.Side, e.Err)
	}
	return fmt.Sprintf("%s%s: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }
