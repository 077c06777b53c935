package board

import (
	"fmt"

	"github.com/apex/log"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/exp/slices"

	"github.com/edjones079/chess-ai-engine/internal/errors"
	"github.com/edjones079/chess-ai-engine/movegen"
)

// Game drives play on a Board: it keeps the pseudo-legal move list of the
// side to move, the squares highlighted for a selected piece, and the ply
// count. A Game is not safe for concurrent use.
type Game struct {
	ID uuid.UUID

	gen        *movegen.Generator
	board      *Board
	moves      []movegen.Move
	highlights movegen.Bitboard
	plies      int
}

// NewGame starts a game on b with a fresh id and generates the first move list.
func NewGame(gen *movegen.Generator, b *Board) *Game {
	g := &Game{ID: uuid.NewV4(), gen: gen, board: b}
	g.regenerate()
	return g
}

func (g *Game) regenerate() {
	pos := g.board.Position()
	g.moves = g.gen.GenerateInto(g.moves, &pos, g.board.SideToMove())
}

// Board returns the underlying board. Callers that mutate it directly must
// call Refresh afterwards.
func (g *Game) Board() *Board { return g.board }

// Refresh regenerates the move list after an external board change.
func (g *Game) Refresh() {
	g.highlights = 0
	g.regenerate()
}

// Moves returns a copy of the current move list.
func (g *Game) Moves() []movegen.Move { return slices.Clone(g.moves) }

// MovesFrom returns the moves whose source is sq.
func (g *Game) MovesFrom(sq movegen.Square) []movegen.Move {
	var out []movegen.Move
	for _, m := range g.moves {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// Highlights returns the destination squares of the last CanMoveFrom call.
func (g *Game) Highlights() movegen.Bitboard { return g.highlights }

// ClearHighlights drops any highlighted squares.
func (g *Game) ClearHighlights() { g.highlights = 0 }

// Plies returns the number of moves played so far.
func (g *Game) Plies() int { return g.plies }

// CanMoveFrom reports whether the side to move has any move starting on sq.
// Every destination of such a move is highlighted; previous highlights are
// replaced.
func (g *Game) CanMoveFrom(sq movegen.Square) bool {
	g.highlights = 0
	for _, m := range g.moves {
		if m.From == sq {
			g.highlights |= movegen.SquareBB(m.To)
		}
	}
	return g.highlights != 0
}

// CanMoveFromTo reports whether from-to is in the current move list. On a
// match the destination is added to the highlights.
func (g *Game) CanMoveFromTo(from, to movegen.Square) bool {
	if g.indexOf(from, to) < 0 {
		return false
	}
	g.highlights |= movegen.SquareBB(to)
	return true
}

func (g *Game) indexOf(from, to movegen.Square) int {
	return slices.IndexFunc(g.moves, func(m movegen.Move) bool {
		return m.From == from && m.To == to
	})
}

// Play makes the move from-to for the side to move. A piece standing on the
// destination is captured and returned. Highlights are cleared, the turn
// passes and the move list is regenerated for the new side.
func (g *Game) Play(from, to movegen.Square) (movegen.Move, Piece, error) {
	side := g.board.SideToMove()
	if !from.Valid() || !to.Valid() {
		return movegen.Move{}, NoPiece, moveError(errors.ErrInvalidSquare, from, to, side)
	}
	if p := g.board.PieceAt(from); p != NoPiece && p.Side() != side {
		return movegen.Move{}, NoPiece, moveError(errors.ErrWrongSide, from, to, side)
	}
	i := g.indexOf(from, to)
	if i < 0 {
		return movegen.Move{}, NoPiece, moveError(errors.ErrIllegalMove, from, to, side)
	}
	m := g.moves[i]

	captured := g.board.MovePiece(from, to)
	g.highlights = 0
	g.board.EndTurn()
	g.plies++
	g.regenerate()

	log.WithFields(log.Fields{
		"game":     g.ID.String(),
		"move":     m.String(),
		"captured": captured.String(),
		"next":     g.board.SideToMove().String(),
	}).Debug("board: move played")
	return m, captured, nil
}

func moveError(err error, from, to movegen.Square, side movegen.Side) error {
	return &errors.MoveError{Err: err, From: from.String(), To: to.String(), Side: side.String()}
}

// PlayString parses coordinate notation and plays it.
func (g *Game) PlayString(s string) (movegen.Move, Piece, error) {
	from, to, err := movegen.ParseMove(s)
	if err != nil {
		return movegen.Move{}, NoPiece, err
	}
	return g.Play(from, to)
}

// Snapshot is the persistent form of a Game.
type Snapshot struct {
	ID    uuid.UUID
	State string
	Side  movegen.Side
	Plies int
	Hash  uint64
}

// Snapshot captures the game for storage.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:    g.ID,
		State: g.board.StateString(),
		Side:  g.board.SideToMove(),
		Plies: g.plies,
		Hash:  g.board.Hash(),
	}
}

// RestoreGame rebuilds a game from a snapshot. Highlights are not persisted.
func RestoreGame(gen *movegen.Generator, s Snapshot) (*Game, error) {
	b, err := FromState(s.State, s.Side)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", s.ID, err)
	}
	g := &Game{ID: s.ID, gen: gen, board: b, plies: s.Plies}
	g.regenerate()
	return g, nil
}
