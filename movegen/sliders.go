package movegen

// sliderDirections maps a slider kind to its direction range.
func sliderDirections(kind PieceKind) (lo, hi Direction) {
	switch kind {
	case Bishop:
		return BishopFamily.Directions()
	case Rook:
		return RookFamily.Directions()
	}
	return North, NumDirections
}

// BishopMoves appends bishop moves for side.
func (g *Generator) BishopMoves(dst []Move, pos *Position, side Side) []Move {
	return g.sliderMoves(dst, pos, side, Bishop)
}

// RookMoves appends rook moves for side.
func (g *Generator) RookMoves(dst []Move, pos *Position, side Side) []Move {
	return g.sliderMoves(dst, pos, side, Rook)
}

// QueenMoves appends queen moves for side: the union of both ray families.
func (g *Generator) QueenMoves(dst []Move, pos *Position, side Side) []Move {
	return g.sliderMoves(dst, pos, side, Queen)
}

func (g *Generator) sliderMoves(dst []Move, pos *Position, side Side, kind PieceKind) []Move {
	friendly, enemy := pos.Friendly(side), pos.Enemy(side)
	pieces := pos.Pieces[side][kind]
	for pieces != 0 {
		dst = g.slide(dst, popLSB(&pieces), kind, friendly, enemy)
	}
	return dst
}

// slide emits the moves of one slider. Each ray stops before a friendly piece
// and right after an enemy one.
func (g *Generator) slide(dst []Move, from Square, kind PieceKind, friendly, enemy Bitboard) []Move {
	if g.magics != nil {
		return g.slideMagic(dst, from, kind, friendly, enemy)
	}
	lo, hi := sliderDirections(kind)
	for dir := lo; dir < hi; dir++ {
		step := Square(dir.Offset())
		to := from
		for n := 0; n < g.tables.geo.edge[from][dir]; n++ {
			to += step
			bb := SquareBB(to)
			if friendly&bb != 0 {
				break
			}
			dst = append(dst, Move{From: from, To: to, Piece: kind})
			if enemy&bb != 0 {
				break
			}
		}
	}
	return dst
}

func (g *Generator) slideMagic(dst []Move, from Square, kind PieceKind, friendly, enemy Bitboard) []Move {
	occ := friendly | enemy
	var attacks Bitboard
	if kind != Bishop {
		attacks |= g.magics.Rook.Attacks(from, occ)
	}
	if kind != Rook {
		attacks |= g.magics.Bishop.Attacks(from, occ)
	}
	targets := attacks &^ friendly
	for targets != 0 {
		dst = append(dst, Move{From: from, To: popLSB(&targets), Piece: kind})
	}
	return dst
}
