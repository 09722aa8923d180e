package algo

import (
	"github.com/zyedidia/generic/stack"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// DFSFrontier explores depth-first from an explicit stack of frontier
// cells. Neighbours already known to be clean are folded into the visited
// set without being walked.
type DFSFrontier struct {
	stack   *stack.Stack[core.Position]
	transit transit
}

// NewDFSFrontier creates an empty depth-first strategy.
func NewDFSFrontier() *DFSFrontier {
	return &DFSFrontier{stack: stack.New[core.Position]()}
}

func (s *DFSFrontier) Name() string { return "dfs" }

// OnArrival forbids cleaning in place while backtracking.
func (s *DFSFrontier) OnArrival(c *Context) bool {
	return s.transit.mode != backtracking
}

func (s *DFSFrontier) Reset() {
	s.transit.clear()
}

func (s *DFSFrontier) Next(c *Context) core.Step {
	s.dropStale(c)

	if c.Exhausted() {
		s.transit.clear()
		if !c.AtDock() {
			return c.ReturnHome()
		}
		return core.Finish
	}

	if s.transit.active() {
		return s.transit.next()
	}
	s.transit.clear()

	if s.stack.Size() == 0 {
		if step, ok := s.expand(c); ok {
			return step
		}
		return s.relocate(c)
	}

	if c.AtDock() {
		return s.transit.start(c, relocating, s.stack.Pop())
	}

	if c.IsVisited(s.stack.Peek()) {
		return s.backtrack(c)
	}
	if step, ok := s.expand(c); ok {
		return step
	}
	return s.backtrack(c)
}

// dropStale pops tops that were reached or fell out of range.
func (s *DFSFrontier) dropStale(c *Context) {
	for s.stack.Size() > 0 {
		top := s.stack.Peek()
		if top != c.Pos && !c.Map.IsKnownUnreachable(top) {
			return
		}
		s.stack.Pop()
	}
}

// expand pushes the unvisited live neighbours, North ending on top, and
// steps toward the new top. Neighbours known to be clean are folded instead.
func (s *DFSFrontier) expand(c *Context) (core.Step, bool) {
	pushed := false
	for i := len(c.Surrounding) - 1; i >= 0; i-- {
		n := c.Surrounding[i]
		if c.IsVisited(n.Pos) {
			continue
		}
		if cell, ok := c.Map.Get(n.Pos); ok && cell.Dirt == 0 {
			c.Visit(n.Pos)
			continue
		}
		s.stack.Push(n.Pos)
		pushed = true
	}
	if !pushed {
		return core.Stay, false
	}
	step, ok := core.StepBetween(c.Pos, s.stack.Peek())
	return step, ok
}

// backtrack walks back to the stack top, or to the dock when it is empty.
func (s *DFSFrontier) backtrack(c *Context) core.Step {
	dst := core.Dock
	if s.stack.Size() > 0 {
		dst = s.stack.Peek()
	}
	if dst == c.Pos {
		return core.Stay
	}
	return s.transit.start(c, backtracking, dst)
}

// relocate scans the map row-major for the first unvisited cell that is not
// known to be clean and travels there.
func (s *DFSFrontier) relocate(c *Context) core.Step {
	for _, pos := range c.Map.Positions() {
		if pos == c.Pos || c.IsVisited(pos) {
			continue
		}
		cell, _ := c.Map.Get(pos)
		if cell.Dirt == 0 {
			c.Visit(pos)
			continue
		}
		return s.transit.start(c, relocating, pos)
	}

	if c.AtDock() {
		return core.Finish
	}
	return c.ReturnHome()
}
