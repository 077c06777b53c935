package movegen

// Direction is one of the eight compass rays.
type Direction uint8

// The order matches the square offsets below: the first four are orthogonal,
// the last four diagonal, and each even/odd pair points in opposite ways.
const (
	North Direction = iota
	South
	East
	West
	NorthWest
	SouthEast
	NorthEast
	SouthWest

	NumDirections = 8
)

var directionOffsets = [NumDirections]int{8, -8, 1, -1, 7, -7, 9, -9}

var directionNames = [NumDirections]string{"N", "S", "E", "W", "NW", "SE", "NE", "SW"}

// Offset is the square-index delta of one step in d.
func (d Direction) Offset() int { return directionOffsets[d] }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return d ^ 1 }

// Diagonal reports whether d belongs to the bishop family.
func (d Direction) Diagonal() bool { return d >= NorthWest }

func (d Direction) String() string {
	if d < NumDirections {
		return directionNames[d]
	}
	return "?"
}

// Family groups sliding directions: rook rays or bishop rays.
type Family uint8

const (
	RookFamily Family = iota
	BishopFamily
)

func (f Family) String() string {
	if f == BishopFamily {
		return "bishop"
	}
	return "rook"
}

// Directions returns the half-open direction range [lo, hi) of the family.
func (f Family) Directions() (lo, hi Direction) {
	if f == BishopFamily {
		return NorthWest, NumDirections
	}
	return North, NorthWest
}

// Geometry holds, for each square and direction, the number of steps left
// before the board edge.
type Geometry struct {
	edge [64][NumDirections]int
}

// NewGeometry computes all 64x8 edge distances.
func NewGeometry() Geometry {
	var g Geometry
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			north := 7 - rank
			south := rank
			east := 7 - file
			west := file

			e := &g.edge[NewSquare(rank, file)]
			e[North] = north
			e[South] = south
			e[East] = east
			e[West] = west
			e[NorthWest] = min(north, west)
			e[SouthEast] = min(south, east)
			e[NorthEast] = min(north, east)
			e[SouthWest] = min(south, west)
		}
	}
	return g
}

// DistanceToEdge returns how many squares lie between sq and the edge in d.
func (g *Geometry) DistanceToEdge(sq Square, d Direction) int {
	return g.edge[sq][d]
}
