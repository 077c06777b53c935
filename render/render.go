// Package render draws boards and bitboards as SVG images.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/edjones079/chess-ai-engine/board"
	"github.com/edjones079/chess-ai-engine/movegen"
)

// Options controls the image geometry and colours.
type Options struct {
	SquareSize  int
	Light       string
	Dark        string
	Highlight   string
	Coordinates bool
}

// DefaultOptions returns a 45px board with file and rank labels.
func DefaultOptions() Options {
	return Options{
		SquareSize:  45,
		Light:       "#f0d9b5",
		Dark:        "#b58863",
		Highlight:   "#9bc700",
		Coordinates: true,
	}
}

// glyphs holds the Unicode chess symbols, indexed by side then kind.
var glyphs = [2][movegen.NumKinds]string{
	{"♙", "♘", "♗", "♖", "♕", "♔"},
	{"♟", "♞", "♝", "♜", "♛", "♚"},
}

func (o Options) margin() int {
	if o.Coordinates {
		return o.SquareSize / 2
	}
	return 0
}

// squareOrigin returns the top-left corner of sq with rank 8 at the top.
func (o Options) squareOrigin(sq movegen.Square) (x, y int) {
	return o.margin() + sq.File()*o.SquareSize, o.margin() + (7-sq.Rank())*o.SquareSize
}

func (o Options) start(w io.Writer) *svg.SVG {
	canvas := svg.New(w)
	size := 8*o.SquareSize + 2*o.margin()
	canvas.Start(size, size)
	return canvas
}

func (o Options) squares(canvas *svg.SVG, highlights movegen.Bitboard) {
	for sq := movegen.Square(0); sq < 64; sq++ {
		x, y := o.squareOrigin(sq)
		fill := o.Light
		if (sq.Rank()+sq.File())%2 == 0 {
			fill = o.Dark
		}
		if highlights.Has(sq) {
			fill = o.Highlight
		}
		canvas.Rect(x, y, o.SquareSize, o.SquareSize, "fill:"+fill)
	}
}

func (o Options) coordinates(canvas *svg.SVG) {
	if !o.Coordinates {
		return
	}
	m := o.margin()
	style := fmt.Sprintf("font-size:%dpx;text-anchor:middle;fill:#333", m*2/3)
	canvas.Gstyle(style)
	for i := 0; i < 8; i++ {
		c := m + i*o.SquareSize + o.SquareSize/2
		canvas.Text(c, m*2/3, string(rune('a'+i)))
		canvas.Text(c, 8*o.SquareSize+m+m*2/3, string(rune('a'+i)))
		r := m + (7-i)*o.SquareSize + o.SquareSize/2 + m/4
		canvas.Text(m/2, r, string(rune('1'+i)))
		canvas.Text(8*o.SquareSize+m+m/2, r, string(rune('1'+i)))
	}
	canvas.Gend()
}

// SVG draws b with the given squares highlighted.
func SVG(w io.Writer, b *board.Board, highlights movegen.Bitboard, opts Options) {
	canvas := opts.start(w)
	canvas.Title(b.ToFEN())
	opts.squares(canvas, highlights)
	opts.coordinates(canvas)

	canvas.Gstyle(fmt.Sprintf("font-size:%dpx;text-anchor:middle", opts.SquareSize*4/5))
	for sq := movegen.Square(0); sq < 64; sq++ {
		kind, side, ok := b.Probe(sq)
		if !ok {
			continue
		}
		x, y := opts.squareOrigin(sq)
		canvas.Text(x+opts.SquareSize/2, y+opts.SquareSize*4/5, glyphs[side][kind])
	}
	canvas.Gend()
	canvas.End()
}

// Bitboard draws a bare mask: set squares use the highlight colour.
func Bitboard(w io.Writer, bb movegen.Bitboard, opts Options) {
	canvas := opts.start(w)
	canvas.Title(fmt.Sprintf("%#016x", uint64(bb)))
	opts.squares(canvas, bb)
	opts.coordinates(canvas)
	canvas.End()
}
