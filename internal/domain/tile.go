package domain

import "math/bits"

// Tile is a terrain tile code. Forest tiles fit in a byte; the placeholder
// sits above the byte range so it can never collide with real tile data.
type Tile int

// Direction indexes the four edges of a tile.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists all four directions in canonical order.
var Directions = [4]Direction{Up, Right, Down, Left}

// Opposite returns the facing direction.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Delta returns the row/col offset of the neighbor in direction d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	default:
		return 0, -1
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "invalid"
	}
}

// Exertion is the adjacency value a tile imposes on one of its edges.
// An edge carries one or two independent tree bits. The value is marker-bit
// encoded in a byte: a 1-bit value b is stored as 0b10|b, a 2-bit value (a,b)
// as 0b100|a<<1|b. Values of different widths therefore never compare equal;
// a 1-bit zero and a 2-bit zero are distinct edge profiles.
type Exertion uint8

// Ex1 encodes a single-bit exertion.
func Ex1(b uint8) Exertion { return Exertion(0b10 | b&1) }

// Ex2 encodes a two-bit exertion; a is the first tree, b the second.
func Ex2(a, b uint8) Exertion { return Exertion(0b100 | (a&1)<<1 | b&1) }

// Width reports how many tree bits the edge carries (1 or 2).
func (e Exertion) Width() int { return bits.Len8(uint8(e)) - 1 }

// Bits returns the raw tree bits without the width marker.
func (e Exertion) Bits() uint8 { return uint8(e) &^ (1 << e.Width()) }

// IsZero reports whether every tree bit is clear, regardless of width.
func (e Exertion) IsZero() bool { return e.Bits() == 0 }

// OnesCount counts set tree bits.
func (e Exertion) OnesCount() int { return bits.OnesCount8(e.Bits()) }

// Pattern holds a tile's exertion toward each direction.
type Pattern [4]Exertion

// OnesCount sums set tree bits over all four directions; fill tiles score
// highest within their family.
func (p Pattern) OnesCount() int {
	n := 0
	for _, e := range p {
		n += e.OnesCount()
	}
	return n
}

// ExertionSet is a bitmask over encoded Exertion values (2..7). It represents
// the achievable exertions of one cell edge during solving and only ever
// shrinks once initialized, which is what guarantees propagation terminates.
type ExertionSet uint8

// zeroValues masks the two all-zero exertion encodings (1-bit and 2-bit).
var zeroValues = SetOf(Ex1(0), Ex2(0, 0))

// SetOf builds a set from individual exertions.
func SetOf(es ...Exertion) ExertionSet {
	var s ExertionSet
	for _, e := range es {
		s |= 1 << e
	}
	return s
}

// Has reports membership.
func (s ExertionSet) Has(e Exertion) bool { return s&(1<<e) != 0 }

// IsEmpty reports whether no exertion remains achievable.
func (s ExertionSet) IsEmpty() bool { return s == 0 }

// Count returns the number of achievable exertions.
func (s ExertionSet) Count() int { return bits.OnesCount8(uint8(s)) }

// Zeros restricts the set to its all-zero members.
func (s ExertionSet) Zeros() ExertionSet { return s & zeroValues }

// Values lists the members in ascending encoded order.
func (s ExertionSet) Values() []Exertion {
	out := make([]Exertion, 0, s.Count())
	for v := Exertion(2); v < 8; v++ {
		if s.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
