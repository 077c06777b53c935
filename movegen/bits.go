package movegen

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit mask; bit i set means square i has some property.
type Bitboard uint64

const (
	EmptyBB Bitboard = 0

	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0xFF
	Rank3 Bitboard = Rank1 << (8 * 2)
	Rank6 Bitboard = Rank1 << (8 * 5)
	Rank8 Bitboard = Rank1 << (8 * 7)

	NotAFile Bitboard = ^FileA
	NotHFile Bitboard = ^FileH
)

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard { return Bitboard(1) << uint(sq) }

// Has reports whether sq is set.
func (b Bitboard) Has(sq Square) bool { return b&SquareBB(sq) != 0 }

// PopCount counts the set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// BitIter walks the set squares of a bitboard, lowest index first.
// It holds its own copy of the remaining bits.
type BitIter struct {
	rest Bitboard
}

// Iter starts a fresh walk over b. b itself is never modified.
func (b Bitboard) Iter() BitIter { return BitIter{rest: b} }

// Next returns the next set square, or (NoSquare, false) when exhausted.
func (it *BitIter) Next() (Square, bool) {
	if it.rest == 0 {
		return NoSquare, false
	}
	sq := Square(bits.TrailingZeros64(uint64(it.rest)))
	it.rest &= it.rest - 1
	return sq, true
}

// ForEach calls fn for every set square in ascending order.
func (b Bitboard) ForEach(fn func(sq Square)) {
	for it := b.Iter(); ; {
		sq, ok := it.Next()
		if !ok {
			return
		}
		fn(sq)
	}
}

// Squares returns the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	b.ForEach(func(sq Square) { out = append(out, sq) })
	return out
}

// popLSB removes and returns the lowest set square of *mask.
func popLSB(mask *Bitboard) Square {
	sq := Square(bits.TrailingZeros64(uint64(*mask)))
	*mask &= *mask - 1
	return sq
}

// Draw renders the mask as an 8x8 grid, rank 8 on top.
func (b Bitboard) Draw() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.WriteByte('1' + byte(r))
		sb.WriteByte(' ')
		for f := 0; f < 8; f++ {
			if b.Has(NewSquare(r, f)) {
				sb.WriteString(" X")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}
