// Package core defines the shared vocabulary of the cleaning robot:
// grid directions, steps, positions and the sensor contracts.
package core

// MaxDirt is the highest dirt level a single cell can hold.
const MaxDirt = 9

// Undiscovered marks a mapped cell whose dirt level was never sensed.
const Undiscovered = -1

// Direction is one of the four grid headings.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists headings in ordinal order. Every neighbour scan uses it.
var Directions = [...]Direction{North, East, South, West}

func (d Direction) String() string {
	return [...]string{"North", "East", "South", "West"}[d]
}

// Rotate turns one quarter: clockwise is North -> East -> South -> West.
func (d Direction) Rotate(clockwise bool) Direction {
	if clockwise {
		return (d + 1) % 4
	}
	return (d + 3) % 4
}

// Step is the action returned by an algorithm on each tick.
type Step int

const (
	StepNorth Step = iota
	StepEast
	StepSouth
	StepWest
	Stay
	Finish
)

func (s Step) String() string {
	return [...]string{"North", "East", "South", "West", "Stay", "Finish"}[s]
}

// Code is the single-letter form used in output files.
func (s Step) Code() string {
	return [...]string{"N", "E", "S", "W", "s", "F"}[s]
}

// IsMove reports whether the step changes the robot position.
func (s Step) IsMove() bool {
	return s <= StepWest
}

// Direction returns the heading of a move step. ok is false for Stay and Finish.
func (s Step) Direction() (d Direction, ok bool) {
	if !s.IsMove() {
		return 0, false
	}
	return Direction(s), true
}

// StepOf converts a heading into its move step.
func StepOf(d Direction) Step {
	return Step(d)
}

// ParseStep decodes a single output-file step code.
func ParseStep(c byte) (Step, bool) {
	switch c {
	case 'N':
		return StepNorth, true
	case 'E':
		return StepEast, true
	case 'S':
		return StepSouth, true
	case 'W':
		return StepWest, true
	case 's':
		return Stay, true
	case 'F':
		return Finish, true
	default:
		return 0, false
	}
}
