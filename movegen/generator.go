package movegen

// Generator produces pseudo-legal move lists. It owns nothing mutable: the
// tables are read-only and every call works on its own Position.
type Generator struct {
	tables *Tables
	magics *Magics
}

// Option configures a Generator.
type Option func(*Generator)

// WithMagics switches slider generation from ray marching to magic lookups.
// Both produce the same set of moves; only the order within a piece differs.
func WithMagics(m *Magics) Option {
	return func(g *Generator) { g.magics = m }
}

// NewGenerator wraps t, building fresh tables when t is nil.
func NewGenerator(t *Tables, opts ...Option) *Generator {
	if t == nil {
		t = NewTables()
	}
	g := &Generator{tables: t}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Tables returns the generator's lookup tables.
func (g *Generator) Tables() *Tables { return g.tables }

// UsesMagics reports whether slider moves come from magic tables.
func (g *Generator) UsesMagics() bool { return g.magics != nil }

// GenerateAllMoves snapshots the board through probe and returns every
// pseudo-legal move for side. The returned slice belongs to the caller.
func (g *Generator) GenerateAllMoves(probe Probe, side Side) []Move {
	pos := NewPosition(probe)
	return g.Generate(&pos, side)
}

// Generate returns every pseudo-legal move for side in pos.
func (g *Generator) Generate(pos *Position, side Side) []Move {
	return g.GenerateInto(make([]Move, 0, 64), pos, side)
}

// GenerateInto appends all moves to dst[:0] and returns it, so a caller can
// reuse one buffer across calls.
func (g *Generator) GenerateInto(dst []Move, pos *Position, side Side) []Move {
	moves := dst[:0]
	moves = g.PawnMoves(moves, pos, side)
	moves = g.KnightMoves(moves, pos, side)
	moves = g.KingMoves(moves, pos, side)

	// Sliders are visited in square order regardless of kind.
	friendly, enemy := pos.Friendly(side), pos.Enemy(side)
	pc := &pos.Pieces[side]
	sliders := pc[Bishop] | pc[Rook] | pc[Queen]
	for sliders != 0 {
		from := popLSB(&sliders)
		kind := Queen
		switch {
		case pc[Bishop].Has(from):
			kind = Bishop
		case pc[Rook].Has(from):
			kind = Rook
		}
		moves = g.slide(moves, from, kind, friendly, enemy)
	}
	return moves
}

// KnightMoves appends knight moves for side.
func (g *Generator) KnightMoves(dst []Move, pos *Position, side Side) []Move {
	return leaperMoves(dst, pos.Pieces[side][Knight], Knight, &g.tables.knightMoves, ^pos.Friendly(side))
}

// KingMoves appends king moves for side. Castling is not generated.
func (g *Generator) KingMoves(dst []Move, pos *Position, side Side) []Move {
	return leaperMoves(dst, pos.Pieces[side][King], King, &g.tables.kingMoves, ^pos.Friendly(side))
}

func leaperMoves(dst []Move, pieces Bitboard, kind PieceKind, table *[64]Bitboard, allowed Bitboard) []Move {
	for pieces != 0 {
		from := popLSB(&pieces)
		targets := table[from] & allowed
		for targets != 0 {
			dst = append(dst, Move{From: from, To: popLSB(&targets), Piece: kind})
		}
	}
	return dst
}
