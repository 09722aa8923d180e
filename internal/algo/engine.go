package algo

import (
	"log/slog"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// State is the engine's top-level mode.
type State int

const (
	Exploring State = iota
	ReturningToDock
	Docked
	Finished
)

func (s State) String() string {
	return [...]string{"Exploring", "ReturningToDock", "Docked", "Finished"}[s]
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes state transitions and faults to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine decides one step per tick from sensor readings. It implements
// core.Algorithm and delegates exploratory moves to a Strategy.
type Engine struct {
	strategy Strategy
	ctx      *Context

	walls   core.WallsSensor
	dirt    core.DirtSensor
	battery core.BatteryMeter

	maxSteps   int
	maxBattery int

	state    State
	lastStep core.Step
	logger   *slog.Logger

	// refreshes counts reachability passes, one per arrival at the dock.
	refreshes int
}

// NewEngine creates an engine exploring with s.
func NewEngine(s Strategy, opts ...Option) *Engine {
	e := &Engine{
		strategy: s,
		state:    Exploring,
		lastStep: core.Stay,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ctx = newContext(e.logger)
	return e
}

func (e *Engine) SetMaxSteps(maxSteps int) { e.maxSteps = maxSteps }

func (e *Engine) SetWallsSensor(s core.WallsSensor) { e.walls = s }

func (e *Engine) SetDirtSensor(s core.DirtSensor) { e.dirt = s }

// SetBatteryMeter captures the current reading as the full-charge level.
func (e *Engine) SetBatteryMeter(m core.BatteryMeter) {
	e.battery = m
	e.maxBattery = m.BatteryState()
}

// Name returns the strategy name.
func (e *Engine) Name() string { return e.strategy.Name() }

// State returns the current mode.
func (e *Engine) State() State { return e.state }

// Position returns the believed position relative to the dock.
func (e *Engine) Position() core.Position { return e.ctx.Pos }

// Map exposes the learned house map.
func (e *Engine) Map() *HouseMap { return e.ctx.Map }

// Err returns the first navigation fault, if any. The tick that
// recorded it returned Stay.
func (e *Engine) Err() error { return e.ctx.Err() }

// NextStep returns the action for this tick. After Finish it keeps
// returning Finish.
func (e *Engine) NextStep() core.Step {
	if e.state == Finished {
		return core.Finish
	}

	c := e.ctx
	c.homebound = false

	step := e.decide()

	if c.homebound {
		e.setState(ReturningToDock)
	}

	c.Pos = c.Pos.Apply(step)
	e.lastStep = step
	if step == core.Finish {
		e.setState(Finished)
	} else {
		c.TotalSteps++
	}
	return step
}

func (e *Engine) decide() core.Step {
	c := e.ctx
	battery := e.battery.BatteryState()

	if battery == 0 && !c.AtDock() {
		return core.Stay
	}

	e.sense()
	c.DockPath, _ = ShortestPath(c.Map, c.Pos, core.Dock)

	if e.state == ReturningToDock && c.AtDock() {
		e.setState(Docked)
	}
	if battery == e.maxBattery {
		e.setState(Exploring)
		e.strategy.Reset()
	}

	if len(c.Surrounding) == 0 {
		if !c.AtDock() {
			return c.StepHome()
		}
		return core.Finish
	}

	switch e.state {
	case Exploring:
		return e.explore(battery)
	case Docked:
		return e.dock()
	default:
		if c.AtDock() {
			return e.dock()
		}
		return c.StepHome()
	}
}

// sense stores the dirt reading under the robot and maps the open
// neighbours. Neighbours known to be out of range stay excluded.
func (e *Engine) sense() {
	c := e.ctx
	c.Map.SetDirt(c.Pos, e.dirt.DirtLevel())

	c.Surrounding = c.Surrounding[:0]
	for _, d := range core.Directions {
		next := c.Pos.Move(d)
		wall := e.walls.IsWall(d)
		c.Map.SetWall(next, wall)
		if wall || c.Map.IsKnownUnreachable(next) {
			continue
		}
		c.Map.Insert(next)
		c.Surrounding = append(c.Surrounding, Neighbor{Pos: next, Dir: d})
	}
}

func (e *Engine) explore(battery int) core.Step {
	c := e.ctx

	// Budget left after reserving the trip home.
	batteryLeft := battery - c.DockPath.Len()
	stepsLeft := e.maxSteps - c.TotalSteps - c.DockPath.Len()

	canClean := batteryLeft >= 1 && stepsLeft >= 1
	canExplore := batteryLeft >= 3 && stepsLeft >= 3

	dirty := c.Map.IsDirty(c.Pos)
	if !c.AtDock() && !dirty {
		c.Visit(c.Pos)
	}
	mayClean := e.strategy.OnArrival(c)

	switch {
	case c.Returning() && c.AtDock():
		return core.Finish
	case c.Returning():
		return c.StepHome()
	case canClean && dirty && mayClean:
		return core.Stay
	case canExplore:
		return e.strategy.Next(c)
	case c.AtDock() && (stepsLeft < 3 || e.maxBattery < 3):
		return core.Finish
	case c.AtDock():
		e.setState(Docked)
		return e.dock()
	default:
		return c.StepHome()
	}
}

func (e *Engine) dock() core.Step {
	c := e.ctx
	if c.Returning() {
		return core.Finish
	}
	if e.lastStep != core.Stay {
		e.refreshes++
		MarkUnreachable(c.Map, c.visited, e.maxBattery)
		if c.Map.Complete() {
			return core.Finish
		}
	}
	return core.Stay
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.logger.Debug("state change",
		"from", e.state, "to", s,
		"pos", e.ctx.Pos, "step", e.ctx.TotalSteps)
	e.state = s
}
