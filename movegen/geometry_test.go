package movegen

import "testing"

func TestDistanceToEdge_OppositePairs(t *testing.T) {
	g := NewGeometry()
	for sq := Square(0); sq < 64; sq++ {
		if got := g.DistanceToEdge(sq, North) + g.DistanceToEdge(sq, South); got != 7 {
			t.Errorf("%s: north+south = %d, want 7", sq, got)
		}
		if got := g.DistanceToEdge(sq, East) + g.DistanceToEdge(sq, West); got != 7 {
			t.Errorf("%s: east+west = %d, want 7", sq, got)
		}
	}
}

func TestDistanceToEdge_DiagonalPairs(t *testing.T) {
	g := NewGeometry()
	abs := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	for sq := Square(0); sq < 64; sq++ {
		r, f := sq.Rank(), sq.File()
		// A diagonal pair spans the whole diagonal through sq minus sq itself.
		if got, want := g.DistanceToEdge(sq, NorthWest)+g.DistanceToEdge(sq, SouthEast), 7-abs(r+f-7); got != want {
			t.Errorf("%s: NW+SE = %d, want %d", sq, got, want)
		}
		if got, want := g.DistanceToEdge(sq, NorthEast)+g.DistanceToEdge(sq, SouthWest), 7-abs(r-f); got != want {
			t.Errorf("%s: NE+SW = %d, want %d", sq, got, want)
		}
	}
}

func TestDistanceToEdge_Spots(t *testing.T) {
	g := NewGeometry()
	e4 := NewSquare(3, 4)
	tests := []struct {
		dir  Direction
		want int
	}{
		{North, 4}, {South, 3}, {East, 3}, {West, 4},
		{NorthWest, 4}, {SouthEast, 3}, {NorthEast, 3}, {SouthWest, 3},
	}
	for _, tt := range tests {
		if got := g.DistanceToEdge(e4, tt.dir); got != tt.want {
			t.Errorf("DistanceToEdge(e4, %s) = %d, want %d", tt.dir, got, tt.want)
		}
	}
}

func TestDirectionOffsetsMatchGeometry(t *testing.T) {
	// Stepping DistanceToEdge times must stay on the board and on a straight
	// line: rank and file each change by at most one per step.
	g := NewGeometry()
	for sq := Square(0); sq < 64; sq++ {
		for dir := Direction(0); dir < NumDirections; dir++ {
			prev := sq
			for n := 1; n <= g.DistanceToEdge(sq, dir); n++ {
				to := sq + Square(dir.Offset()*n)
				if !to.Valid() {
					t.Fatalf("%s %s step %d left the board", sq, dir, n)
				}
				dr, df := to.Rank()-prev.Rank(), to.File()-prev.File()
				if dr < -1 || dr > 1 || df < -1 || df > 1 {
					t.Fatalf("%s %s step %d wrapped from %s to %s", sq, dir, n, prev, to)
				}
				prev = to
			}
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for dir := Direction(0); dir < NumDirections; dir++ {
		if dir.Offset() != -dir.Opposite().Offset() {
			t.Errorf("%s offset %d is not the negation of %s offset %d", dir, dir.Offset(), dir.Opposite(), dir.Opposite().Offset())
		}
		if dir.Diagonal() != dir.Opposite().Diagonal() {
			t.Errorf("%s and %s are in different families", dir, dir.Opposite())
		}
	}
}
