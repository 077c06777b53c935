package movegen

// pawnShift holds the square delta between source and destination for each
// pawn sub-rule, per side.
type pawnShift struct {
	push, double, left, right int
}

var pawnShifts = [2]pawnShift{
	White: {push: 8, double: 16, left: 7, right: 9},
	Black: {push: -8, double: -16, left: -9, right: -7},
}

// PawnMoves appends pawn pushes, double pushes and diagonal captures for side.
// Moves onto the last rank are plain moves; promotion choice is not modelled.
//
// The double push is shifted out of the single-push result, which is already
// masked by empty squares, so a pawn whose intermediate square is occupied
// never double-pushes.
func (g *Generator) PawnMoves(dst []Move, pos *Position, side Side) []Move {
	pawns := pos.Pieces[side][Pawn]
	if pawns == 0 {
		return dst
	}
	empty := pos.Empty()
	enemy := pos.Enemy(side)

	var single, double, capLeft, capRight Bitboard
	if side == White {
		single = (pawns << 8) & empty
		double = ((single & Rank3) << 8) & empty
		capLeft = ((pawns & NotAFile) << 7) & enemy
		capRight = ((pawns & NotHFile) << 9) & enemy
	} else {
		single = (pawns >> 8) & empty
		double = ((single & Rank6) >> 8) & empty
		capLeft = ((pawns & NotAFile) >> 9) & enemy
		capRight = ((pawns & NotHFile) >> 7) & enemy
	}

	sh := pawnShifts[side]
	dst = addPawnMoves(dst, single, sh.push)
	dst = addPawnMoves(dst, double, sh.double)
	dst = addPawnMoves(dst, capLeft, sh.left)
	dst = addPawnMoves(dst, capRight, sh.right)
	return dst
}

// addPawnMoves turns each destination bit back into a move by undoing the
// uniform shift that produced it.
func addPawnMoves(dst []Move, targets Bitboard, shift int) []Move {
	for targets != 0 {
		to := popLSB(&targets)
		dst = append(dst, Move{From: to - Square(shift), To: to, Piece: Pawn})
	}
	return dst
}
