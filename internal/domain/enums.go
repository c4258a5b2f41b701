package domain

// Orientation is one of four phase offsets aligning the repeating 2x4 fill
// pattern with absolute grid coordinates.
type Orientation int

const (
	// OrientationAuto lets the engine search all four phases.
	OrientationAuto Orientation = -1

	Orientation0 Orientation = iota - 1
	Orientation1
	Orientation2
	Orientation3
)

// OrientationCount is the number of distinct phases.
const OrientationCount = 4

func (o Orientation) String() string {
	switch o {
	case OrientationAuto:
		return "auto"
	case Orientation0:
		return "phase0"
	case Orientation1:
		return "phase1"
	case Orientation2:
		return "phase2"
	case Orientation3:
		return "phase3"
	default:
		return "invalid"
	}
}

// Status classifies a fill outcome.
type Status int

const (
	// StatusSuccess means every cell resolved to a family tile with no
	// residual mismatches. An empty region is also a success.
	StatusSuccess Status = iota
	// StatusPartialInnerBorder means the region resolved, but one or more
	// cells fell back to the universal zero-exertion tile (reduced density).
	StatusPartialInnerBorder
	// StatusUnsatisfiable means every orientation scored above the caller's
	// mismatch threshold; the best partial assignment is still returned.
	StatusUnsatisfiable
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartialInnerBorder:
		return "partial-inner-border"
	case StatusUnsatisfiable:
		return "unsatisfiable"
	default:
		return "invalid"
	}
}
