package core

import "fmt"

// Position is a cell coordinate relative to the docking station.
// Rows grow southwards and columns grow eastwards.
type Position struct {
	Row int
	Col int
}

// Dock is the origin of every robot-relative coordinate system.
var Dock = Position{}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Move returns the neighbour in direction d.
func (p Position) Move(d Direction) Position {
	switch d {
	case North:
		return Position{p.Row - 1, p.Col}
	case East:
		return Position{p.Row, p.Col + 1}
	case South:
		return Position{p.Row + 1, p.Col}
	default:
		return Position{p.Row, p.Col - 1}
	}
}

// Apply returns the position after performing step s. Stay and Finish keep p.
func (p Position) Apply(s Step) Position {
	if d, ok := s.Direction(); ok {
		return p.Move(d)
	}
	return p
}

// StepBetween returns the move leading from p to an adjacent cell q.
// ok is false when q is not an orthogonal neighbour.
func StepBetween(p, q Position) (Step, bool) {
	for _, d := range Directions {
		if p.Move(d) == q {
			return StepOf(d), true
		}
	}
	return Stay, false
}

// Less orders positions row-major. Map scans use it for determinism.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}
