package chess

type DirectionKind uint8

const (
	DirectionNone DirectionKind = iota
	DirectionHorizontal
	DirectionVertical
	DirectionDiagonal
	DirectionKnight
)

func (k DirectionKind) String() string {
	switch k {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	case DirectionDiagonal:
		return "diagonal"
	case DirectionKnight:
		return "knight"
	default:
		return "none"
	}
}

// Direction is the file/rank delta between two squares.
type Direction struct {
	df int
	dr int
}

func (d Direction) FileDelta() int { return d.df }
func (d Direction) RankDelta() int { return d.dr }

func (d Direction) Kind() DirectionKind {
	af, ar := abs(d.df), abs(d.dr)
	switch {
	case af == 0 && ar == 0:
		return DirectionNone
	case ar == 0:
		return DirectionHorizontal
	case af == 0:
		return DirectionVertical
	case af == ar:
		return DirectionDiagonal
	case (af == 1 && ar == 2) || (af == 2 && ar == 1):
		return DirectionKnight
	default:
		return DirectionNone
	}
}

// IsForwardForPawn reports a straight move along the file, the only shape of a
// non-capturing pawn move.
func (d Direction) IsForwardForPawn() bool {
	return d.df == 0 && d.dr != 0
}

// IsDiagonalStep reports a move to one of the four diagonal neighbours.
func (d Direction) IsDiagonalStep() bool {
	return abs(d.df) == 1 && abs(d.dr) == 1
}

// Distance is the number of king steps the delta spans.
func (d Direction) Distance() int {
	return max(abs(d.df), abs(d.dr))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
