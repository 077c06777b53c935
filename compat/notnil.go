package compat

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/edjones079/chess-ai-engine/internal/errors"
	"github.com/edjones079/chess-ai-engine/movegen"
)

var notnilKinds = map[chess.PieceType]movegen.PieceKind{
	chess.Pawn:   movegen.Pawn,
	chess.Knight: movegen.Knight,
	chess.Bishop: movegen.Bishop,
	chess.Rook:   movegen.Rook,
	chess.Queen:  movegen.Queen,
	chess.King:   movegen.King,
}

// NotnilProbe reads piece placement from a notnil/chess position. Both
// libraries number squares a1 = 0 through h8 = 63.
func NotnilProbe(pos *chess.Position) movegen.Probe {
	b := pos.Board()
	return func(sq movegen.Square) (movegen.PieceKind, movegen.Side, bool) {
		p := b.Piece(chess.Square(sq))
		if p == chess.NoPiece {
			return 0, movegen.White, false
		}
		kind, ok := notnilKinds[p.Type()]
		if !ok {
			return 0, movegen.White, false
		}
		return kind, notnilSide(p.Color()), true
	}
}

// NotnilSide returns the side to move of a notnil/chess position.
func NotnilSide(pos *chess.Position) movegen.Side { return notnilSide(pos.Turn()) }

func notnilSide(c chess.Color) movegen.Side {
	if c == chess.Black {
		return movegen.Black
	}
	return movegen.White
}

// NotnilPosition parses fen with notnil/chess.
func NotnilPosition(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidFEN, err)
	}
	return chess.NewGame(opt).Position(), nil
}

// NotnilMoves converts the legal moves notnil/chess reports for pos into
// movegen moves. Promotions collapse to a single move per square pair.
func NotnilMoves(pos *chess.Position) []movegen.Move {
	probe := NotnilProbe(pos)
	seen := make(map[[2]chess.Square]bool)
	var out []movegen.Move
	for _, m := range pos.ValidMoves() {
		key := [2]chess.Square{m.S1(), m.S2()}
		if seen[key] {
			continue
		}
		seen[key] = true
		from := movegen.Square(m.S1())
		kind, _, _ := probe(from)
		out = append(out, movegen.Move{From: from, To: movegen.Square(m.S2()), Piece: kind})
	}
	return out
}
