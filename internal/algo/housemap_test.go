package algo

import (
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// corridorMap maps a straight eastward corridor of n cells starting at the dock.
func corridorMap(n int) *HouseMap {
	m := NewHouseMap()
	for c := 1; c < n; c++ {
		m.Insert(core.Position{Row: 0, Col: c})
	}
	for c := 0; c < n; c++ {
		m.SetDirt(core.Position{Row: 0, Col: c}, 0)
	}
	return m
}

func TestHouseMapInsertKeepsKnownCells(t *testing.T) {
	m := NewHouseMap()
	p := core.Position{Row: 0, Col: 1}

	if !m.Insert(p) {
		t.Fatalf("Insert(%v) on a new cell = false, want true", p)
	}
	m.SetDirt(p, 4)
	if m.Insert(p) {
		t.Errorf("Insert(%v) twice = true, want false", p)
	}
	if c, _ := m.Get(p); c.Dirt != 4 {
		t.Errorf("dirt after re-insert = %d, want 4", c.Dirt)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestHouseMapNeighborsSkipUnknownAndUnreachable(t *testing.T) {
	m := NewHouseMap()
	east := core.Dock.Move(core.East)
	south := core.Dock.Move(core.South)
	m.Insert(east)
	m.Insert(south)
	m.MarkUnreachable(south)

	got := m.Neighbors(core.Dock)
	if len(got) != 1 || got[0].Pos != east || got[0].Dir != core.East {
		t.Errorf("Neighbors(dock) = %v, want only east", got)
	}

	if n := m.Neighbors(core.Position{Row: 9, Col: 9}); n != nil {
		t.Errorf("Neighbors(unknown) = %v, want nil", n)
	}
}

func TestHouseMapComplete(t *testing.T) {
	m := corridorMap(3)
	if !m.Complete() {
		t.Fatalf("clean sensed corridor should be complete")
	}

	far := core.Position{Row: 0, Col: 3}
	m.Insert(far)
	if m.Complete() {
		t.Errorf("undiscovered reachable cell should block completion")
	}

	m.MarkUnreachable(far)
	if !m.Complete() {
		t.Errorf("unreachable cells should not block completion")
	}

	m.SetDirt(core.Position{Row: 0, Col: 1}, 2)
	if m.Complete() {
		t.Errorf("remaining dirt should block completion")
	}
}

func TestHouseMapPositionsSorted(t *testing.T) {
	m := NewHouseMap()
	m.Insert(core.Position{Row: 1, Col: 0})
	m.Insert(core.Position{Row: -1, Col: 2})
	m.Insert(core.Position{Row: 0, Col: -1})

	got := m.Positions()
	for i := 1; i < len(got); i++ {
		if !got[i-1].Less(got[i]) {
			t.Errorf("Positions() not sorted: %v", got)
		}
	}
}

func TestMarkUnreachableCorridor(t *testing.T) {
	tests := []struct {
		maxBattery int
		reachable  int
	}{
		{4, 2},  // radius 2: dock and one cell
		{5, 3},  // radius 3
		{20, 8}, // whole corridor
	}

	for _, tt := range tests {
		m := corridorMap(8)
		visited := mapset.New[core.Position]()
		MarkUnreachable(m, visited, tt.maxBattery)

		if got := m.ReachableCount(); got != tt.reachable {
			t.Errorf("maxBattery=%d: ReachableCount() = %d, want %d", tt.maxBattery, got, tt.reachable)
		}
	}
}

func TestMarkUnreachableIsSticky(t *testing.T) {
	m := corridorMap(6)
	visited := mapset.New[core.Position]()

	excluded := MarkUnreachable(m, visited, 6)
	if len(excluded) != 3 || excluded[0] != (core.Position{Row: 0, Col: 3}) {
		t.Fatalf("excluded = %v, want (0,3)..(0,5)", excluded)
	}
	for _, p := range excluded {
		if !visited.Has(p) {
			t.Errorf("excluded cell %v should join the visited set", p)
		}
	}

	// A larger battery does not bring cells back.
	if again := MarkUnreachable(m, visited, 40); len(again) != 0 {
		t.Errorf("second pass excluded %v, want none", again)
	}
	if m.IsReachable(core.Position{Row: 0, Col: 3}) {
		t.Errorf("unreachable flag was cleared")
	}
}
