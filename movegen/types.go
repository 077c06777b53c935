// Package movegen generates pseudo-legal chess moves from 64-bit board masks.
//
// Squares are numbered rank-major with a1 = 0, h1 = 7, a8 = 56 and h8 = 63.
// Bit i of every Bitboard refers to square i. Tables are built once by
// NewTables and are read-only afterwards, so a Generator can be shared by any
// number of goroutines.
package movegen

import (
	"fmt"
	"strings"

	"github.com/edjones079/chess-ai-engine/internal/errors"
)

// Side is the colour of the player owning a piece.
type Side uint8

const (
	White Side = 0
	Black Side = 1
)

// Other returns the opposing side.
func (s Side) Other() Side { return s ^ 1 }

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// ParseSide accepts "w"/"white" and "b"/"black" in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return White, fmt.Errorf("%w %q", errors.ErrInvalidSide, s)
}

// PieceKind is a colourless piece type, usable as an array index.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King

	NumKinds = 6
)

var kindLetters = [NumKinds]byte{'P', 'N', 'B', 'R', 'Q', 'K'}

var kindNames = [NumKinds]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if int(k) < NumKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("PieceKind(%d)", uint8(k))
}

// Letter returns the upper-case FEN letter of the kind.
func (k PieceKind) Letter() byte {
	if int(k) < NumKinds {
		return kindLetters[k]
	}
	return '?'
}

// KindFromLetter maps a FEN piece letter of either case to its kind and side.
// ok is false for any other byte.
func KindFromLetter(ch byte) (kind PieceKind, side Side, ok bool) {
	side = White
	if ch >= 'a' && ch <= 'z' {
		side = Black
		ch -= 'a' - 'A'
	}
	for k, l := range kindLetters {
		if l == ch {
			return PieceKind(k), side, true
		}
	}
	return 0, White, false
}

// Square represents a board position (0-63).
type Square int

const NoSquare Square = -1

// NewSquare builds a square from zero-based rank and file.
func NewSquare(rank, file int) Square { return Square(rank*8 + file) }

func (sq Square) Rank() int { return int(sq) / 8 }
func (sq Square) File() int { return int(sq) % 8 }

// Valid reports whether sq lies on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

// String returns algebraic coordinates such as "e4".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts algebraic coordinates ("e2") to a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, fmt.Errorf("%w %q: length", errors.ErrInvalidSquare, alg)
	}
	file, rank := alg[0], alg[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w %q", errors.ErrInvalidSquare, alg)
	}
	return NewSquare(int(rank-'1'), int(file-'a')), nil
}

// Probe reports the piece standing on a square, if any. It is the only thing
// the generator needs from whatever owns the board.
type Probe func(sq Square) (kind PieceKind, side Side, ok bool)
