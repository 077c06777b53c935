package movegen

import (
	"fmt"

	"github.com/edjones079/chess-ai-engine/internal/errors"
)

// StateLength is the length of a board state string: one byte per square.
const StateLength = 64

// Position is a throwaway per-call snapshot: one bitboard per side and kind.
type Position struct {
	Pieces [2][NumKinds]Bitboard
}

// NewPosition asks probe about every square once and sorts the answers into
// bitboards.
func NewPosition(probe Probe) Position {
	var p Position
	for sq := Square(0); sq < 64; sq++ {
		kind, side, ok := probe(sq)
		if !ok || int(kind) >= NumKinds || side > Black {
			continue
		}
		p.Pieces[side][kind] |= SquareBB(sq)
	}
	return p
}

// ParseState builds a position from a 64-byte state string, a1 first, using
// FEN letters for pieces. Any other byte (the '0' empty marker, stray
// punctuation, unknown letters) contributes nothing and is skipped silently.
// Bytes beyond the 64th are ignored and a short string leaves the missing
// squares empty.
func ParseState(state string) Position {
	var p Position
	for i := 0; i < len(state) && i < StateLength; i++ {
		kind, side, ok := KindFromLetter(state[i])
		if !ok {
			continue
		}
		p.Pieces[side][kind] |= SquareBB(Square(i))
	}
	return p
}

// ValidateState reports a state string whose length is not 64. Symbol content
// is not checked; see ParseState.
func ValidateState(state string) error {
	if len(state) != StateLength {
		return fmt.Errorf("%w: length %d, want %d", errors.ErrInvalidState, len(state), StateLength)
	}
	return nil
}

// Occupancy returns every square held by side.
func (p *Position) Occupancy(side Side) Bitboard {
	pc := &p.Pieces[side]
	return pc[Pawn] | pc[Knight] | pc[Bishop] | pc[Rook] | pc[Queen] | pc[King]
}

// Friendly is the occupancy of the side to move.
func (p *Position) Friendly(side Side) Bitboard { return p.Occupancy(side) }

// Enemy is the occupancy of the opponent.
func (p *Position) Enemy(side Side) Bitboard { return p.Occupancy(side.Other()) }

// Occupied returns all pieces of both sides.
func (p *Position) Occupied() Bitboard { return p.Occupancy(White) | p.Occupancy(Black) }

// Empty returns the unoccupied squares.
func (p *Position) Empty() Bitboard { return ^p.Occupied() }

// Probe answers square queries from the snapshot itself, which lets a
// Position stand in for a board collaborator.
func (p *Position) Probe(sq Square) (PieceKind, Side, bool) {
	bb := SquareBB(sq)
	for side := White; side <= Black; side++ {
		for kind := PieceKind(0); kind < NumKinds; kind++ {
			if p.Pieces[side][kind]&bb != 0 {
				return kind, side, true
			}
		}
	}
	return 0, White, false
}

// State renders the snapshot back into a state string with '0' for empties.
func (p *Position) State() string {
	buf := make([]byte, StateLength)
	for sq := Square(0); sq < 64; sq++ {
		kind, side, ok := p.Probe(sq)
		switch {
		case !ok:
			buf[sq] = '0'
		case side == Black:
			buf[sq] = kind.Letter() + ('a' - 'A')
		default:
			buf[sq] = kind.Letter()
		}
	}
	return string(buf)
}
