package board

import (
	"fmt"
	"strings"

	"github.com/edjones079/chess-ai-engine/internal/errors"
	"github.com/edjones079/chess-ai-engine/movegen"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func fenError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseFEN reads the placement and side-to-move fields of a FEN string. The
// side defaults to White when missing. Castling, en passant and the clocks
// are accepted but ignored since the generator does not model them.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fenError("empty string")
	}

	b := &Board{}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("%d ranks, want 8", len(ranks))
	}
	for i, rankStr := range ranks {
		if rankStr == "" {
			return nil, fenError("empty rank description")
		}
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := pieceFromLetter(ch)
			if p == NoPiece {
				return nil, fenError("unrecognised piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("too many squares in rank %d", rank+1)
			}
			b.pieces[movegen.NewSquare(rank, file)] = p
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d does not have 8 columns", rank+1)
		}
	}

	if len(fields) > 1 {
		switch fields[1] {
		case "w":
			b.sideToMove = movegen.White
		case "b":
			b.sideToMove = movegen.Black
		default:
			return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
		}
	}

	b.zobristKey = b.ComputeZobrist()
	return b, nil
}

// ToFEN renders the position as FEN. Castling and en passant are always "-"
// and the clocks are fixed at "0 1".
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[movegen.NewSquare(rank, file)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if b.sideToMove == movegen.White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	sb.WriteString(" - - 0 1")
	return sb.String()
}
