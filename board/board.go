// Package board is a headless chess board: piece placement, the side to move
// and a Zobrist hash. It feeds the move generator through Board.Probe.
package board

import (
	"fmt"
	"strings"

	"github.com/edjones079/chess-ai-engine/internal/errors"
	"github.com/edjones079/chess-ai-engine/movegen"
)

// Piece encodes a coloured piece in one byte. The low three bits hold the
// kind plus one (so zero is NoPiece) and bit 3 is set for Black.
type Piece uint8

const NoPiece Piece = 0

const blackBit = 8

// NewPiece combines a side and a kind.
func NewPiece(side movegen.Side, kind movegen.PieceKind) Piece {
	p := Piece(kind + 1)
	if side == movegen.Black {
		p |= blackBit
	}
	return p
}

// Kind returns the colourless type. Undefined for NoPiece.
func (p Piece) Kind() movegen.PieceKind { return movegen.PieceKind(p&7) - 1 }

// Side returns the owner. NoPiece defaults to White.
func (p Piece) Side() movegen.Side {
	if p&blackBit != 0 {
		return movegen.Black
	}
	return movegen.White
}

// Letter returns the FEN letter, upper case for White, or '0' for NoPiece.
func (p Piece) Letter() byte {
	if p == NoPiece {
		return '0'
	}
	l := p.Kind().Letter()
	if p.Side() == movegen.Black {
		l += 'a' - 'A'
	}
	return l
}

func (p Piece) String() string { return string(p.Letter()) }

// pieceFromLetter maps a FEN letter to a Piece. Anything else is NoPiece.
func pieceFromLetter(ch byte) Piece {
	kind, side, ok := movegen.KindFromLetter(ch)
	if !ok {
		return NoPiece
	}
	return NewPiece(side, kind)
}

// Board holds the piece placement and whose turn it is.
type Board struct {
	pieces     [64]Piece
	sideToMove movegen.Side
	zobristKey uint64
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	b := &Board{}
	b.zobristKey = b.ComputeZobrist()
	return b
}

// StartPosition returns the standard initial position.
func StartPosition() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq movegen.Square) Piece { return b.pieces[sq] }

// Probe answers the generator's square queries. The method value b.Probe
// satisfies movegen.Probe.
func (b *Board) Probe(sq movegen.Square) (movegen.PieceKind, movegen.Side, bool) {
	p := b.pieces[sq]
	if p == NoPiece {
		return 0, movegen.White, false
	}
	return p.Kind(), p.Side(), true
}

// Position snapshots the board into per-side bitboards.
func (b *Board) Position() movegen.Position { return movegen.NewPosition(b.Probe) }

// SideToMove returns whose turn it is.
func (b *Board) SideToMove() movegen.Side { return b.sideToMove }

// SetSideToMove changes whose turn it is, keeping the hash in sync.
func (b *Board) SetSideToMove(s movegen.Side) {
	if s == b.sideToMove {
		return
	}
	b.sideToMove = s
	b.zobristKey ^= zobristSide
}

// EndTurn passes the move to the other side.
func (b *Board) EndTurn() { b.SetSideToMove(b.sideToMove.Other()) }

// Hash returns the Zobrist key of the position.
func (b *Board) Hash() uint64 { return b.zobristKey }

func (b *Board) addPiece(sq movegen.Square, p Piece) {
	if p == NoPiece {
		return
	}
	b.pieces[sq] = p
	b.zobristKey ^= zobristPiece[p][sq]
}

func (b *Board) removePiece(sq movegen.Square) Piece {
	p := b.pieces[sq]
	if p == NoPiece {
		return NoPiece
	}
	b.pieces[sq] = NoPiece
	b.zobristKey ^= zobristPiece[p][sq]
	return p
}

// SetPiece puts p on sq, replacing whatever stood there.
func (b *Board) SetPiece(sq movegen.Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// MovePiece moves the piece on from to to. Whatever stood on to is captured
// and returned. No legality is checked.
func (b *Board) MovePiece(from, to movegen.Square) (captured Piece) {
	moving := b.removePiece(from)
	captured = b.removePiece(to)
	b.addPiece(to, moving)
	return captured
}

// StateString renders the placement as 64 bytes, a1 first, with FEN letters
// for pieces and '0' for empty squares.
func (b *Board) StateString() string {
	buf := make([]byte, movegen.StateLength)
	for sq := range b.pieces {
		buf[sq] = b.pieces[sq].Letter()
	}
	return string(buf)
}

// SetStateString replaces the placement from a state string. The string must
// be exactly 64 bytes; unrecognised symbols leave their square empty.
func (b *Board) SetStateString(state string) error {
	if err := movegen.ValidateState(state); err != nil {
		return err
	}
	for sq := movegen.Square(0); sq < 64; sq++ {
		b.SetPiece(sq, pieceFromLetter(state[sq]))
	}
	return nil
}

// FromState builds a board from a state string and side to move.
func FromState(state string, side movegen.Side) (*Board, error) {
	b := NewBoard()
	if err := b.SetStateString(state); err != nil {
		return nil, err
	}
	b.SetSideToMove(side)
	return b, nil
}

// Validate reports whether the incremental hash matches a full recompute.
func (b *Board) Validate() error {
	if b.zobristKey != b.ComputeZobrist() {
		return fmt.Errorf("%w: zobrist key out of sync", errors.ErrInvalidState)
	}
	return nil
}

// String draws the board with rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  +-----------------+\n")
	for r := 7; r >= 0; r-- {
		sb.WriteByte('1' + byte(r))
		sb.WriteString(" |")
		for f := 0; f < 8; f++ {
			sb.WriteByte(' ')
			p := b.pieces[movegen.NewSquare(r, f)]
			if p == NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.Letter())
			}
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString("  +-----------------+\n")
	sb.WriteString("    a b c d e f g h\n")
	return sb.String()
}
