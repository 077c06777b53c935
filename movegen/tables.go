package movegen

import "github.com/apex/log"

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Tables is the immutable set of per-square lookup data: edge distances,
// leaper attack masks and the blocker-free sliding reference masks.
type Tables struct {
	geo Geometry

	knightMoves [64]Bitboard
	kingMoves   [64]Bitboard

	// Sliding reference masks indexed by Family. The final edge square of
	// every ray is left out, which makes them the relevant-occupancy masks
	// of the magic scaffold.
	rayMasks [2][64]Bitboard
}

// NewTables precomputes geometry and static attack tables.
func NewTables() *Tables {
	t := &Tables{geo: NewGeometry()}
	for sq := Square(0); sq < 64; sq++ {
		t.knightMoves[sq] = leaperMask(sq, &knightOffsets)
		t.kingMoves[sq] = leaperMask(sq, &kingOffsets)
		t.rayMasks[RookFamily][sq] = t.referenceMask(sq, RookFamily)
		t.rayMasks[BishopFamily][sq] = t.referenceMask(sq, BishopFamily)
	}
	log.Debug("movegen: precomputed geometry and attack tables")
	return t
}

// Geometry exposes the edge-distance table.
func (t *Tables) Geometry() *Geometry { return &t.geo }

// DistanceToEdge is shorthand for t.Geometry().DistanceToEdge.
func (t *Tables) DistanceToEdge(sq Square, d Direction) int { return t.geo.edge[sq][d] }

// LeaperAttacks returns the knight or king destinations from sq on an empty
// board. Any other kind yields an empty mask.
func (t *Tables) LeaperAttacks(sq Square, kind PieceKind) Bitboard {
	switch kind {
	case Knight:
		return t.knightMoves[sq]
	case King:
		return t.kingMoves[sq]
	}
	return EmptyBB
}

// SlidingRayMask returns the coarse reference mask for a slider of the given
// family on sq: every ray stops one short of the edge.
func (t *Tables) SlidingRayMask(sq Square, f Family) Bitboard {
	return t.rayMasks[f][sq]
}

func leaperMask(sq Square, offsets *[8][2]int) Bitboard {
	rank, file := sq.Rank(), sq.File()
	var mask Bitboard
	for _, off := range offsets {
		r, f := rank+off[0], file+off[1]
		if r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= SquareBB(NewSquare(r, f))
		}
	}
	return mask
}

func (t *Tables) referenceMask(sq Square, fam Family) Bitboard {
	var mask Bitboard
	lo, hi := fam.Directions()
	for dir := lo; dir < hi; dir++ {
		for n := 1; n < t.geo.edge[sq][dir]; n++ {
			mask |= SquareBB(sq + Square(dir.Offset()*n))
		}
	}
	return mask
}
