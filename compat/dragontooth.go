// Package compat exposes boards from other chess libraries as movegen probes.
package compat

import (
	"github.com/dylhunn/dragontoothmg"

	"github.com/edjones079/chess-ai-engine/board"
	"github.com/edjones079/chess-ai-engine/movegen"
)

// DragontoothProbe reads piece placement from a dragontoothmg board.
func DragontoothProbe(b *dragontoothmg.Board) movegen.Probe {
	return func(sq movegen.Square) (movegen.PieceKind, movegen.Side, bool) {
		bit := uint64(1) << uint(sq)
		if kind, ok := dragontoothKind(&b.White, bit); ok {
			return kind, movegen.White, true
		}
		if kind, ok := dragontoothKind(&b.Black, bit); ok {
			return kind, movegen.Black, true
		}
		return 0, movegen.White, false
	}
}

func dragontoothKind(bbs *dragontoothmg.Bitboards, bit uint64) (movegen.PieceKind, bool) {
	if bbs.All&bit == 0 {
		return 0, false
	}
	switch {
	case bbs.Pawns&bit != 0:
		return movegen.Pawn, true
	case bbs.Knights&bit != 0:
		return movegen.Knight, true
	case bbs.Bishops&bit != 0:
		return movegen.Bishop, true
	case bbs.Rooks&bit != 0:
		return movegen.Rook, true
	case bbs.Queens&bit != 0:
		return movegen.Queen, true
	case bbs.Kings&bit != 0:
		return movegen.King, true
	}
	return 0, false
}

// DragontoothSide returns the side to move of a dragontoothmg board.
func DragontoothSide(b *dragontoothmg.Board) movegen.Side {
	if b.Wtomove {
		return movegen.White
	}
	return movegen.Black
}

// FromFEN parses fen into a dragontoothmg board and returns its probe and side
// to move. The FEN is validated and normalised first because dragontoothmg
// expects all six fields and does not report errors.
func FromFEN(fen string) (movegen.Probe, movegen.Side, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, movegen.White, err
	}
	dt := dragontoothmg.ParseFen(b.ToFEN())
	return DragontoothProbe(&dt), DragontoothSide(&dt), nil
}
