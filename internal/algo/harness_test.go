package algo

import (
	"math"
	"strings"
	"testing"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// testHouse is a minimal simulator for engine tests. Rows use 'W' for
// walls, 'D' for the dock, digits for dirt and anything else for clean
// floor. Everything outside the rows is wall.
type testHouse struct {
	rows    []string
	dirt    map[core.Position]int
	dock    core.Position
	pos     core.Position
	battery float64
	max     int
}

func newTestHouse(t *testing.T, maxBattery int, layout ...string) *testHouse {
	t.Helper()
	h := &testHouse{rows: layout, dirt: make(map[core.Position]int), max: maxBattery, battery: float64(maxBattery)}
	docks := 0
	for r, line := range layout {
		for c, ch := range line {
			p := core.Position{Row: r, Col: c}
			switch {
			case ch == 'D':
				h.dock = p
				docks++
			case ch >= '0' && ch <= '9':
				h.dirt[p] = int(ch - '0')
			}
		}
	}
	if docks != 1 {
		t.Fatalf("layout %q has %d docks", strings.Join(layout, "|"), docks)
	}
	h.pos = h.dock
	return h
}

func (h *testHouse) wallAt(p core.Position) bool {
	if p.Row < 0 || p.Row >= len(h.rows) || p.Col < 0 || p.Col >= len(h.rows[p.Row]) {
		return true
	}
	return h.rows[p.Row][p.Col] == 'W'
}

func (h *testHouse) IsWall(d core.Direction) bool { return h.wallAt(h.pos.Move(d)) }

func (h *testHouse) DirtLevel() int { return h.dirt[h.pos] }

func (h *testHouse) BatteryState() int { return int(h.battery) }

func (h *testHouse) totalDirt() int {
	sum := 0
	for _, d := range h.dirt {
		sum += d
	}
	return sum
}

// apply performs one step with the same physics as the simulator and
// reports false when the battery was already empty.
func (h *testHouse) apply(s core.Step) bool {
	if s == core.Finish {
		return true
	}
	if s == core.Stay && h.pos == h.dock {
		h.battery = math.Min(h.battery+float64(h.max)/20, float64(h.max))
		h.battery = math.Ceil(h.battery*1e5) / 1e5
		return true
	}
	if s == core.Stay && h.dirt[h.pos] > 0 {
		h.dirt[h.pos]--
	}
	h.pos = h.pos.Apply(s)
	if h.battery <= 0 {
		return false
	}
	h.battery--
	return true
}

// run drives e against h until Finish or maxSteps, failing on any fault,
// wall collision or exhausted battery.
func run(t *testing.T, e *Engine, h *testHouse, maxSteps int) []core.Step {
	t.Helper()
	return runObserved(t, e, h, maxSteps, nil)
}

// runObserved is run with a hook called after every applied step. Each
// exploratory move must leave enough battery and steps to walk the mapped
// route home.
func runObserved(t *testing.T, e *Engine, h *testHouse, maxSteps int, observe func(core.Step)) []core.Step {
	t.Helper()
	e.SetMaxSteps(maxSteps)
	e.SetWallsSensor(h)
	e.SetDirtSensor(h)
	e.SetBatteryMeter(h)

	var steps []core.Step
	for len(steps) < maxSteps {
		s := e.NextStep()
		steps = append(steps, s)
		if err := e.Err(); err != nil {
			t.Fatalf("step %d: engine fault: %v", len(steps), err)
		}
		if !h.apply(s) {
			t.Fatalf("step %d: battery exhausted at %v", len(steps), h.pos)
		}
		if h.wallAt(h.pos) {
			t.Fatalf("step %d: moved into wall at %v", len(steps), h.pos)
		}
		if e.State() == Exploring && s.IsMove() {
			home, ok := ShortestPath(e.Map(), e.Position(), core.Dock)
			if !ok {
				t.Fatalf("step %d: no mapped route home from %v", len(steps), e.Position())
			}
			if b := h.BatteryState(); b < home.Len() {
				t.Fatalf("step %d: battery %d cannot cover %d moves home", len(steps), b, home.Len())
			}
			if left := maxSteps - len(steps); left < home.Len() {
				t.Fatalf("step %d: %d steps left cannot cover %d moves home", len(steps), left, home.Len())
			}
		}
		if observe != nil {
			observe(s)
		}
		if s == core.Finish {
			break
		}
	}
	return steps
}

func codes(steps []core.Step) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(s.Code())
	}
	return b.String()
}
