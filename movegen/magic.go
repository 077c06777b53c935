package movegen

import (
	"fmt"
	"math/bits"
	"math/rand"

	"github.com/apex/log"

	"github.com/edjones079/chess-ai-engine/internal/errors"
)

// MagicEntry is the per-square perfect-hash parameters for one slider family.
type MagicEntry struct {
	Mask      Bitboard // relevant blocker squares
	Magic     uint64
	IndexBits uint8
}

// Index hashes a blocker set into [0, 1<<IndexBits).
func (e MagicEntry) Index(blockers Bitboard) uint64 {
	return (uint64(blockers&e.Mask) * e.Magic) >> (64 - uint(e.IndexBits))
}

// MagicIndex is the free-function form of MagicEntry.Index.
func MagicIndex(e MagicEntry, blockers Bitboard) uint64 { return e.Index(blockers) }

// RelevantOccupancy maps index onto a subset of mask: the i-th set bit of
// mask, counted from a1 upwards, is kept when bit i of index is set. Only the
// lowest bitCount set bits of mask take part.
func RelevantOccupancy(mask Bitboard, index int, bitCount int) Bitboard {
	var occ Bitboard
	m := mask
	for i := 0; i < bitCount && m != 0; i++ {
		sq := popLSB(&m)
		if index&(1<<uint(i)) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

// ExactRookAttacks ray-casts the four orthogonal directions from sq. Each ray
// runs to the edge or to the first square in blockers, which is included.
func (t *Tables) ExactRookAttacks(sq Square, blockers Bitboard) Bitboard {
	return t.ExactAttacks(sq, blockers, RookFamily)
}

// ExactBishopAttacks is ExactRookAttacks for the diagonals.
func (t *Tables) ExactBishopAttacks(sq Square, blockers Bitboard) Bitboard {
	return t.ExactAttacks(sq, blockers, BishopFamily)
}

// ExactAttacks ray-casts every direction of the family from sq.
func (t *Tables) ExactAttacks(sq Square, blockers Bitboard, fam Family) Bitboard {
	var attacks Bitboard
	lo, hi := fam.Directions()
	for dir := lo; dir < hi; dir++ {
		step := Square(dir.Offset())
		to := sq
		for n := 0; n < t.geo.edge[sq][dir]; n++ {
			to += step
			attacks |= SquareBB(to)
			if blockers.Has(to) {
				break
			}
		}
	}
	return attacks
}

// maxMagicAttempts bounds the candidate search for a single square.
const maxMagicAttempts = 100_000_000

// FindMagic searches for a multiplier that hashes every blocker subset of the
// square's relevant mask without destructive collisions. It returns the entry
// together with the filled attack table.
func FindMagic(t *Tables, sq Square, fam Family, rng *rand.Rand) (MagicEntry, []Bitboard, error) {
	mask := t.SlidingRayMask(sq, fam)
	n := mask.PopCount()
	size := 1 << uint(n)

	occupancies := make([]Bitboard, size)
	attacks := make([]Bitboard, size)
	for i := 0; i < size; i++ {
		occupancies[i] = RelevantOccupancy(mask, i, n)
		attacks[i] = t.ExactAttacks(sq, occupancies[i], fam)
	}

	table := make([]Bitboard, size)
	used := make([]int, size) // attempt number that last wrote each slot
	for attempt := 1; attempt <= maxMagicAttempts; attempt++ {
		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()
		if bits.OnesCount64((uint64(mask)*magic)&0xFF00000000000000) < 6 {
			continue
		}
		entry := MagicEntry{Mask: mask, Magic: magic, IndexBits: uint8(n)}
		ok := true
		for i := 0; i < size; i++ {
			idx := entry.Index(occupancies[i])
			if used[idx] != attempt {
				used[idx] = attempt
				table[idx] = attacks[i]
			} else if table[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return entry, table, nil
		}
	}
	return MagicEntry{}, nil, errMagicFor(fam, sq)
}

func errMagicFor(fam Family, sq Square) error {
	return fmt.Errorf("%s magic for %s: %w", fam, sq, errors.ErrMagicNotFound)
}

// MagicTable maps (square, blockers) to slider attacks for one family.
type MagicTable struct {
	Family  Family
	Entries [64]MagicEntry
	attacks [64][]Bitboard
}

// Attacks looks up the attack set of a slider on sq given board occupancy.
func (m *MagicTable) Attacks(sq Square, occupied Bitboard) Bitboard {
	return m.attacks[sq][m.Entries[sq].Index(occupied)]
}

// Size returns the total number of table slots across all squares.
func (m *MagicTable) Size() int {
	total := 0
	for sq := range m.attacks {
		total += len(m.attacks[sq])
	}
	return total
}

// BuildMagicTable finds magics for all 64 squares of one family.
func BuildMagicTable(t *Tables, fam Family, rng *rand.Rand) (*MagicTable, error) {
	m := &MagicTable{Family: fam}
	for sq := Square(0); sq < 64; sq++ {
		entry, table, err := FindMagic(t, sq, fam, rng)
		if err != nil {
			return nil, err
		}
		m.Entries[sq] = entry
		m.attacks[sq] = table
	}
	return m, nil
}

// Magics bundles the rook and bishop lookup tables.
type Magics struct {
	Rook   *MagicTable
	Bishop *MagicTable
}

// BuildMagics builds both families from a deterministic seed, so the same
// seed always yields the same constants.
func BuildMagics(t *Tables, seed int64) (*Magics, error) {
	rng := rand.New(rand.NewSource(seed))
	rook, err := BuildMagicTable(t, RookFamily, rng)
	if err != nil {
		return nil, err
	}
	bishop, err := BuildMagicTable(t, BishopFamily, rng)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"seed":         seed,
		"rook_slots":   rook.Size(),
		"bishop_slots": bishop.Size(),
	}).Debug("movegen: built magic tables")
	return &Magics{Rook: rook, Bishop: bishop}, nil
}

// Attacks returns the family's attack set from sq for the given occupancy.
func (m *Magics) Attacks(sq Square, occupied Bitboard, fam Family) Bitboard {
	if fam == BishopFamily {
		return m.Bishop.Attacks(sq, occupied)
	}
	return m.Rook.Attacks(sq, occupied)
}
