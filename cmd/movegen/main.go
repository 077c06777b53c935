package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/montanaflynn/stats"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/edjones079/chess-ai-engine/board"
	"github.com/edjones079/chess-ai-engine/movegen"
	"github.com/edjones079/chess-ai-engine/render"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	divide := flag.Bool("divide", false, "Print per-piece counts and moves grouped by source square")
	repeat := flag.Int("repeat", 1, "Generate N times and report timing statistics")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	useMagic := flag.Bool("magic", false, "Use magic lookups for sliders")
	seed := flag.Int64("seed", 1, "Seed for the magic search")
	svgOut := flag.String("svg", "", "Write an SVG of the board with all destinations highlighted")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log.SetHandler(cli.Default)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *repeat <= 0 {
		fmt.Fprintln(os.Stderr, "-repeat must be > 0")
		os.Exit(2)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	tables := movegen.NewTables()
	var opts []movegen.Option
	if *useMagic {
		m, err := movegen.BuildMagics(tables, *seed)
		if err != nil {
			log.WithError(err).Fatal("building magic tables")
		}
		opts = append(opts, movegen.WithMagics(m))
	}
	gen := movegen.NewGenerator(tables, opts...)

	moves := gen.GenerateAllMoves(b.Probe, b.SideToMove())

	if *divide {
		printDivide(moves)
		return
	}

	if *svgOut != "" {
		if err := writeSVG(*svgOut, b, moves); err != nil {
			log.WithError(err).Fatal("writing svg")
		}
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop: one sample per call, in microseconds.
	samples := make([]float64, 0, *repeat)
	pos := b.Position()
	buf := make([]movegen.Move, 0, 256)
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		t0 := time.Now()
		buf = gen.GenerateInto(buf, &pos, b.SideToMove())
		samples = append(samples, float64(time.Since(t0).Nanoseconds())/1e3)
	}
	elapsed := time.Since(start)

	data := stats.LoadRawData(samples)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	p95, err := stats.Percentile(data, 95)
	if err != nil {
		p95 = median
	}

	// Single line: Label Moves Calls Total Mean Median P95 (µs)
	fmt.Printf("%s \t%d \t%d \t%s \t%.2f \t%.2f \t%.2f\n", *label, len(moves), *repeat, elapsed, mean, median, p95)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func printDivide(moves []movegen.Move) {
	perKind := make(map[movegen.PieceKind]int)
	perSource := make(map[movegen.Square][]string)
	for _, m := range moves {
		perKind[m.Piece]++
		perSource[m.From] = append(perSource[m.From], m.To.String())
	}

	kinds := maps.Keys(perKind)
	slices.Sort(kinds)
	for _, k := range kinds {
		fmt.Printf("%s: %d\n", k, perKind[k])
	}

	sources := maps.Keys(perSource)
	slices.Sort(sources)
	for _, sq := range sources {
		targets := perSource[sq]
		slices.Sort(targets)
		fmt.Printf("%s: %v\n", sq, targets)
	}
	fmt.Printf("Total: %d\n", len(moves))
}

func writeSVG(path string, b *board.Board, moves []movegen.Move) error {
	var targets movegen.Bitboard
	for _, m := range moves {
		targets |= movegen.SquareBB(m.To)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	render.SVG(f, b, targets, render.DefaultOptions())
	return f.Close()
}
