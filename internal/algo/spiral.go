package algo

import (
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// SpiralOptions configures SpiralGreedy.
type SpiralOptions struct {
	Clockwise bool  `mapstructure:"spiralClockwise" yaml:"spiralClockwise"`
	Seed      int64 `mapstructure:"seed" yaml:"seed"` // 0 seeds from the clock
}

// DefaultSpiralOptions turns clockwise with a clock seed.
func DefaultSpiralOptions() SpiralOptions {
	return SpiralOptions{Clockwise: true}
}

// SpiralGreedy sweeps in a tightening spiral and, when boxed in, jumps to
// the nearest unvisited cell by round-trip cost.
type SpiralGreedy struct {
	clockwise bool
	facing    core.Direction
	rng       *rand.Rand
	transit   transit
}

// NewSpiralGreedy creates a spiral strategy facing North.
func NewSpiralGreedy(opts SpiralOptions) *SpiralGreedy {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SpiralGreedy{
		clockwise: opts.Clockwise,
		facing:    core.North,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (s *SpiralGreedy) Name() string { return "spiral" }

// OnArrival always allows cleaning.
func (s *SpiralGreedy) OnArrival(c *Context) bool { return true }

func (s *SpiralGreedy) Reset() {
	s.transit.clear()
}

func (s *SpiralGreedy) Next(c *Context) core.Step {
	if s.transit.active() {
		return s.transit.next()
	}
	s.transit.clear()

	if c.Exhausted() {
		if !c.AtDock() {
			return c.ReturnHome()
		}
		return core.Finish
	}

	spiral := s.facing
	straight := s.facing.Rotate(!s.clockwise)

	if s.open(c, spiral) {
		s.facing = s.facing.Rotate(s.clockwise)
		return core.StepOf(spiral)
	}
	if s.open(c, straight) {
		return core.StepOf(straight)
	}

	target, ok := s.frontier(c)
	if !ok {
		if !c.AtDock() {
			return c.ReturnHome()
		}
		return core.Finish
	}
	return s.transit.start(c, relocating, target)
}

// open reports whether the live neighbour in direction d is free and unvisited.
func (s *SpiralGreedy) open(c *Context, d core.Direction) bool {
	for _, n := range c.Surrounding {
		if n.Dir == d {
			return !c.IsVisited(n.Pos)
		}
	}
	return false
}

// frontier grows BFS rings from the robot until a ring touches unvisited
// open cells, then picks the one minimising trip plus return distance.
// Ties are broken uniformly at random.
func (s *SpiralGreedy) frontier(c *Context) (core.Position, bool) {
	seen := mapset.New[core.Position]()
	found := mapset.New[core.Position]()
	var candidates []core.Position

	seen.Put(c.Pos)
	ring := []core.Position{c.Pos}

	for len(ring) > 0 && len(candidates) == 0 {
		var next []core.Position
		for _, pos := range ring {
			for _, n := range c.Map.Neighbors(pos) {
				if !seen.Has(n.Pos) {
					seen.Put(n.Pos)
					next = append(next, n.Pos)
				}
				if n.Pos == c.Pos || c.IsVisited(n.Pos) || found.Has(n.Pos) {
					continue
				}
				if cell, ok := c.Map.Get(n.Pos); ok && !cell.IsWall {
					found.Put(n.Pos)
					candidates = append(candidates, n.Pos)
				}
			}
		}
		ring = next
	}

	best := -1
	var optimal []core.Position
	for _, pos := range candidates {
		there := Distance(c.Map, c.Pos, pos)
		back := Distance(c.Map, pos, core.Dock)
		if there < 0 || back < 0 {
			continue
		}
		cost := there + back
		switch {
		case best < 0 || cost < best:
			best = cost
			optimal = append(optimal[:0], pos)
		case cost == best:
			optimal = append(optimal, pos)
		}
	}

	if len(optimal) == 0 {
		return core.Position{}, false
	}
	return optimal[s.rng.Intn(len(optimal))], true
}
