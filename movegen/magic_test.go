package movegen

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	cerrors "github.com/edjones079/chess-ai-engine/internal/errors"
)

var (
	testMagicsOnce sync.Once
	testMagics     *Magics
	testMagicsErr  error
)

func sharedMagics(t *testing.T) *Magics {
	t.Helper()
	testMagicsOnce.Do(func() {
		testMagics, testMagicsErr = BuildMagics(NewTables(), 1)
	})
	if testMagicsErr != nil {
		t.Fatalf("BuildMagics: %v", testMagicsErr)
	}
	return testMagics
}

func TestRelevantOccupancy_Bijection(t *testing.T) {
	tab := NewTables()
	for _, sq := range []Square{NewSquare(0, 0), NewSquare(3, 3), NewSquare(6, 1)} {
		for _, fam := range []Family{RookFamily, BishopFamily} {
			mask := tab.SlidingRayMask(sq, fam)
			n := mask.PopCount()
			seen := make(map[Bitboard]bool, 1<<uint(n))
			for i := 0; i < 1<<uint(n); i++ {
				occ := RelevantOccupancy(mask, i, n)
				if occ&^mask != 0 {
					t.Fatalf("%s %s index %d: occupancy leaves the mask", fam, sq, i)
				}
				if occ.PopCount() != popcountInt(i) {
					t.Fatalf("%s %s index %d: %d bits set, want %d", fam, sq, i, occ.PopCount(), popcountInt(i))
				}
				if seen[occ] {
					t.Fatalf("%s %s index %d: duplicate occupancy", fam, sq, i)
				}
				seen[occ] = true
			}
			if got := RelevantOccupancy(mask, 0, n); got != 0 {
				t.Errorf("%s %s: index 0 gave %#x", fam, sq, uint64(got))
			}
			if got := RelevantOccupancy(mask, 1<<uint(n)-1, n); got != mask {
				t.Errorf("%s %s: all-ones index gave %#x, want mask %#x", fam, sq, uint64(got), uint64(mask))
			}
		}
	}
}

func TestRelevantOccupancy_LowestBitsFirst(t *testing.T) {
	mask := SquareBB(3) | SquareBB(10) | SquareBB(40)
	if got, want := RelevantOccupancy(mask, 0b010, 3), SquareBB(10); got != want {
		t.Errorf("index 0b010 = %#x, want %#x", uint64(got), uint64(want))
	}
	if got, want := RelevantOccupancy(mask, 0b111, 2), SquareBB(3)|SquareBB(10); got != want {
		t.Errorf("bitCount 2 = %#x, want %#x", uint64(got), uint64(want))
	}
}

func popcountInt(i int) int {
	n := 0
	for ; i != 0; i &= i - 1 {
		n++
	}
	return n
}

func TestExactAttacks_EmptyBoardReachesEdge(t *testing.T) {
	tab := NewTables()
	for sq := Square(0); sq < 64; sq++ {
		r, f := sq.Rank(), sq.File()
		var rook, bishop Bitboard
		for o := Square(0); o < 64; o++ {
			if o == sq {
				continue
			}
			or, of := o.Rank(), o.File()
			if or == r || of == f {
				rook |= SquareBB(o)
			}
			if or-of == r-f || or+of == r+f {
				bishop |= SquareBB(o)
			}
		}
		if got := tab.ExactRookAttacks(sq, 0); got != rook {
			t.Fatalf("rook %s:\n%swant\n%s", sq, got.Draw(), rook.Draw())
		}
		if got := tab.ExactBishopAttacks(sq, 0); got != bishop {
			t.Fatalf("bishop %s:\n%swant\n%s", sq, got.Draw(), bishop.Draw())
		}
		// The reference mask is the attack set minus its edge squares.
		for _, fam := range []Family{RookFamily, BishopFamily} {
			if m := tab.SlidingRayMask(sq, fam); m&^tab.ExactAttacks(sq, 0, fam) != 0 {
				t.Fatalf("%s mask of %s is not inside its empty-board attacks", fam, sq)
			}
		}
	}
	if n := tab.ExactRookAttacks(0, 0).PopCount(); n != 14 {
		t.Errorf("rook a1 on empty board attacks %d squares, want 14", n)
	}
}

func TestExactAttacks_StopsAtFirstBlocker(t *testing.T) {
	tab := NewTables()
	d4 := NewSquare(3, 3)
	blockers := SquareBB(NewSquare(5, 3)) | // d6
		SquareBB(NewSquare(6, 3)) | // d7, shadowed
		SquareBB(NewSquare(3, 5)) | // f4
		SquareBB(NewSquare(3, 1)) | // b4
		SquareBB(NewSquare(0, 3)) // d1, on the edge
	want := SquareBB(NewSquare(4, 3)) | SquareBB(NewSquare(5, 3)) |
		SquareBB(NewSquare(2, 3)) | SquareBB(NewSquare(1, 3)) | SquareBB(NewSquare(0, 3)) |
		SquareBB(NewSquare(3, 4)) | SquareBB(NewSquare(3, 5)) |
		SquareBB(NewSquare(3, 2)) | SquareBB(NewSquare(3, 1))
	if got := tab.ExactRookAttacks(d4, blockers); got != want {
		t.Errorf("got\n%swant\n%s", got.Draw(), want.Draw())
	}
}

func TestExactAttacks_RandomBlockers(t *testing.T) {
	tab := NewTables()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		sq := Square(rng.Intn(64))
		blockers := Bitboard(rng.Uint64() & rng.Uint64())
		for _, fam := range []Family{RookFamily, BishopFamily} {
			attacks := tab.ExactAttacks(sq, blockers, fam)
			lo, hi := fam.Directions()
			for dir := lo; dir < hi; dir++ {
				blocked := false
				for n := 1; n <= tab.DistanceToEdge(sq, dir); n++ {
					to := sq + Square(dir.Offset()*n)
					if attacks.Has(to) == blocked {
						t.Fatalf("%s %s from %s blockers %#x: square %s attacked=%v after blocked=%v",
							fam, dir, sq, uint64(blockers), to, attacks.Has(to), blocked)
					}
					if blockers.Has(to) {
						blocked = true
					}
				}
			}
		}
	}
}

func TestFindMagic_Deterministic(t *testing.T) {
	tab := NewTables()
	sq := NewSquare(3, 3)
	a, _, err := FindMagic(tab, sq, RookFamily, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := FindMagic(tab, sq, RookFamily, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed produced %+v and %+v", a, b)
	}
	if int(a.IndexBits) != tab.SlidingRayMask(sq, RookFamily).PopCount() {
		t.Errorf("IndexBits = %d, want mask popcount", a.IndexBits)
	}
}

func TestFindMagic_TableMatchesExactAttacks(t *testing.T) {
	tab := NewTables()
	sq := NewSquare(0, 0)
	entry, table, err := FindMagic(tab, sq, RookFamily, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 1<<entry.IndexBits {
		t.Fatalf("table length %d, want %d", len(table), 1<<entry.IndexBits)
	}
	n := int(entry.IndexBits)
	for i := 0; i < 1<<uint(n); i++ {
		occ := RelevantOccupancy(entry.Mask, i, n)
		idx := MagicIndex(entry, occ)
		if idx >= uint64(len(table)) {
			t.Fatalf("index %d out of range", idx)
		}
		if table[idx] != tab.ExactRookAttacks(sq, occ) {
			t.Fatalf("subset %d: table disagrees with ray casting", i)
		}
	}
}

func TestMagicNotFoundIsWrapped(t *testing.T) {
	err := errMagicFor(RookFamily, NewSquare(0, 0))
	if !errors.Is(err, cerrors.ErrMagicNotFound) {
		t.Fatalf("error %v does not wrap ErrMagicNotFound", err)
	}
}

func TestBuildMagics_AgreesWithExactAttacks(t *testing.T) {
	if testing.Short() {
		t.Skip("magic search is slow")
	}
	tab := NewTables()
	m := sharedMagics(t)
	rng := rand.New(rand.NewSource(11))
	for sq := Square(0); sq < 64; sq++ {
		for i := 0; i < 200; i++ {
			occ := Bitboard(rng.Uint64() & rng.Uint64())
			for _, fam := range []Family{RookFamily, BishopFamily} {
				if got, want := m.Attacks(sq, occ, fam), tab.ExactAttacks(sq, occ, fam); got != want {
					t.Fatalf("%s %s occ %#x:\n%swant\n%s", fam, sq, uint64(occ), got.Draw(), want.Draw())
				}
			}
		}
	}
}
