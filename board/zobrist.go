package board

import (
	"math/rand"

	"github.com/edjones079/chess-ai-engine/movegen"
)

// Zobrist keys, indexed by piece code and square, plus one for Black to move.
var (
	zobristPiece [16][64]uint64
	zobristSide  uint64
)

func init() {
	// Fixed seed so hashes are stable across runs and can be stored.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := range zobristPiece {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	zobristSide = rnd.Uint64()
}

// ComputeZobrist hashes the board from scratch.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq, p := range b.pieces {
		if p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	if b.sideToMove == movegen.Black {
		key ^= zobristSide
	}
	return key
}
