package movegen_test

import (
	"testing"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"

	"github.com/edjones079/chess-ai-engine/movegen"
)

const (
	fenStart    = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
	fenKiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1"
	fenPos6     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func benchGenerate(b *testing.B, g *movegen.Generator, fen string) {
	pos := movegen.ParseState(placementState(fen))
	buf := make([]movegen.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = g.GenerateInto(buf, &pos, movegen.White)
	}
}

func benchGoose(b *testing.B, fen string) {
	board, err := goose.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	buf := make([]goose.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.GenerateMovesInto(buf)
		buf = buf[:0]
	}
}

func magicGenerator(b *testing.B) *movegen.Generator {
	b.Helper()
	tab := movegen.NewTables()
	m, err := movegen.BuildMagics(tab, 1)
	if err != nil {
		b.Fatal(err)
	}
	return movegen.NewGenerator(tab, movegen.WithMagics(m))
}

func BenchmarkGenerate_Rays_Initial(b *testing.B) {
	benchGenerate(b, movegen.NewGenerator(nil), fenStart)
}

func BenchmarkGenerate_Rays_Kiwipete(b *testing.B) {
	benchGenerate(b, movegen.NewGenerator(nil), fenKiwipete)
}

func BenchmarkGenerate_Rays_Pos6(b *testing.B) {
	benchGenerate(b, movegen.NewGenerator(nil), fenPos6)
}

func BenchmarkGenerate_Magic_Kiwipete(b *testing.B) {
	benchGenerate(b, magicGenerator(b), fenKiwipete)
}

func BenchmarkGenerate_Magic_Pos6(b *testing.B) {
	benchGenerate(b, magicGenerator(b), fenPos6)
}

// The goosemg generator does legality checks and special moves, so it is an
// upper reference rather than a like-for-like comparison.
func BenchmarkGoose_Kiwipete(b *testing.B) {
	benchGoose(b, fenKiwipete)
}

func BenchmarkGoose_Pos6(b *testing.B) {
	benchGoose(b, fenPos6)
}

func BenchmarkGenerateAllMoves_Probe(b *testing.B) {
	g := movegen.NewGenerator(nil)
	pos := movegen.ParseState(placementState(fenKiwipete))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.GenerateAllMoves(pos.Probe, movegen.White)
	}
}

func BenchmarkNewTables(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = movegen.NewTables()
	}
}
