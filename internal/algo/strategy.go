package algo

import (
	"fmt"
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// Strategy picks exploratory moves. The engine calls Next only after it has
// checked that the battery and step budget allow one more step out and the
// trip back.
type Strategy interface {
	// Name returns the registry name.
	Name() string

	// Next returns the exploratory step for this tick.
	Next(c *Context) core.Step

	// OnArrival runs on every exploring tick before Next. It reports whether
	// the engine may stop to clean the current cell.
	OnArrival(c *Context) bool

	// Reset drops in-flight transit state after a full charge.
	Reset()
}

// Context is the state shared between the engine and its strategy.
type Context struct {
	Map *HouseMap

	// Pos is the robot position relative to the dock.
	Pos core.Position

	// DockPath is the current shortest route home, recomputed every tick.
	DockPath Path

	// Surrounding holds the live, open, reachable neighbours for this tick.
	Surrounding []Neighbor

	TotalSteps int

	Logger *slog.Logger

	visited      mapset.Set[core.Position]
	visitedCount int

	returning bool // handoff: finish once back at the dock
	homebound bool // a dock-path step was taken this tick
	err       error
}

func newContext(logger *slog.Logger) *Context {
	c := &Context{
		Map:          NewHouseMap(),
		Logger:       logger,
		visited:      mapset.New[core.Position](),
		visitedCount: 1,
	}
	c.visited.Put(core.Dock)
	return c
}

// AtDock reports whether the robot stands on the dock.
func (c *Context) AtDock() bool {
	return c.Pos == core.Dock
}

// Visit folds pos into the visited set. The actually-visited counter only
// grows for positions that were not in the set.
func (c *Context) Visit(pos core.Position) bool {
	if c.visited.Has(pos) {
		return false
	}
	c.visited.Put(pos)
	c.visitedCount++
	return true
}

// IsVisited reports whether pos is in the visited set.
func (c *Context) IsVisited(pos core.Position) bool {
	return c.visited.Has(pos)
}

// VisitedCount is the number of cells actually visited. Cells added to the
// set only because they fell out of range are not counted.
func (c *Context) VisitedCount() int {
	return c.visitedCount
}

// Exhausted reports whether every reachable cell has been visited.
func (c *Context) Exhausted() bool {
	return c.VisitedCount() >= c.Map.ReachableCount()
}

// Returning reports whether a final trip home was requested.
func (c *Context) Returning() bool {
	return c.returning
}

// StepHome consumes the next move of the dock path.
func (c *Context) StepHome() core.Step {
	d, ok := c.DockPath.Pop()
	if !ok {
		c.Fail(fmt.Errorf("return to dock from %v: %w", c.Pos, ErrNoPath))
		return core.Stay
	}
	c.homebound = true
	return core.StepOf(d)
}

// ReturnHome hands control back to the engine for the final trip home.
func (c *Context) ReturnHome() core.Step {
	c.returning = true
	return c.StepHome()
}

// Fail records the first navigation fault of the run.
func (c *Context) Fail(err error) {
	if c.err != nil {
		return
	}
	c.err = err
	if c.Logger != nil {
		c.Logger.Error("navigation fault", "pos", c.Pos, "step", c.TotalSteps, "error", err)
	}
}

// Err returns the recorded fault, if any.
func (c *Context) Err() error {
	return c.err
}

// transitMode tags what a cached sub-path is for.
type transitMode int

const (
	idle transitMode = iota
	backtracking
	relocating
)

func (m transitMode) String() string {
	return [...]string{"idle", "backtracking", "relocating"}[m]
}

// transit is a cached sub-path streamed one move per tick.
type transit struct {
	mode transitMode
	path Path
}

func (t *transit) active() bool {
	return t.mode != idle && !t.path.Empty()
}

// start plans a route and takes its first move. An unreachable target is a
// fault and yields Stay.
func (t *transit) start(c *Context, mode transitMode, dst core.Position) core.Step {
	path, ok := ShortestPath(c.Map, c.Pos, dst)
	if !ok || path.Empty() {
		t.clear()
		c.Fail(fmt.Errorf("%v from %v to %v: %w", mode, c.Pos, dst, ErrNoPath))
		return core.Stay
	}
	t.mode = mode
	t.path = path
	return t.next()
}

// next pops one move and falls back to idle once the path is drained.
func (t *transit) next() core.Step {
	d, ok := t.path.Pop()
	if t.path.Empty() {
		t.mode = idle
	}
	if !ok {
		return core.Stay
	}
	return core.StepOf(d)
}

func (t *transit) clear() {
	t.mode = idle
	t.path = nil
}
