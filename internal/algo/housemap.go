// Package algo implements the per-tick navigation engine of the cleaning
// robot: incremental house mapping, BFS planning, battery-range
// reachability and the exploration strategies.
package algo

import (
	"sort"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// Cell is what the robot has learned about one grid position.
type Cell struct {
	Pos       core.Position
	Dirt      int  // 0..core.MaxDirt or core.Undiscovered
	Reachable bool // cleared once the cell falls outside battery range
	IsWall    bool
}

// Dirty reports whether the cell holds a known positive dirt level.
func (c Cell) Dirty() bool {
	return c.Dirt > 0 && c.Dirt <= core.MaxDirt
}

// HouseMap is the robot's growing picture of the house.
// Cells are never removed once inserted.
type HouseMap struct {
	cells map[core.Position]Cell
}

// NewHouseMap returns a map holding only the dock.
func NewHouseMap() *HouseMap {
	m := &HouseMap{cells: make(map[core.Position]Cell)}
	m.Insert(core.Dock)
	return m
}

// Insert adds an undiscovered open cell. Known cells are left untouched.
// It reports whether the cell was new.
func (m *HouseMap) Insert(pos core.Position) bool {
	if _, ok := m.cells[pos]; ok {
		return false
	}
	m.cells[pos] = Cell{Pos: pos, Dirt: core.Undiscovered, Reachable: true}
	return true
}

// Get returns the cell at pos.
func (m *HouseMap) Get(pos core.Position) (Cell, bool) {
	c, ok := m.cells[pos]
	return c, ok
}

// Contains reports whether pos was ever mapped.
func (m *HouseMap) Contains(pos core.Position) bool {
	_, ok := m.cells[pos]
	return ok
}

// SetDirt records a sensed dirt level. Unknown positions are ignored.
func (m *HouseMap) SetDirt(pos core.Position, dirt int) {
	if c, ok := m.cells[pos]; ok {
		c.Dirt = dirt
		m.cells[pos] = c
	}
}

// SetWall records a live wall reading for a mapped position.
func (m *HouseMap) SetWall(pos core.Position, wall bool) {
	if c, ok := m.cells[pos]; ok {
		c.IsWall = wall
		m.cells[pos] = c
	}
}

// MarkUnreachable flags pos as out of battery range. The flag is sticky.
func (m *HouseMap) MarkUnreachable(pos core.Position) {
	if c, ok := m.cells[pos]; ok {
		c.Reachable = false
		m.cells[pos] = c
	}
}

// IsReachable reports whether pos is mapped and still in range.
func (m *HouseMap) IsReachable(pos core.Position) bool {
	c, ok := m.cells[pos]
	return ok && c.Reachable
}

// IsKnownUnreachable reports whether pos is mapped and out of range.
func (m *HouseMap) IsKnownUnreachable(pos core.Position) bool {
	c, ok := m.cells[pos]
	return ok && !c.Reachable
}

// IsDirty reports whether pos is mapped with positive dirt.
func (m *HouseMap) IsDirty(pos core.Position) bool {
	c, ok := m.cells[pos]
	return ok && c.Dirty()
}

// Neighbors returns the mapped, reachable orthogonal neighbours of pos in
// direction order. Nothing is sensed; planning relies on it exclusively.
func (m *HouseMap) Neighbors(pos core.Position) []Neighbor {
	if !m.Contains(pos) {
		return nil
	}
	out := make([]Neighbor, 0, 4)
	for _, d := range core.Directions {
		next := pos.Move(d)
		if m.IsReachable(next) {
			out = append(out, Neighbor{Pos: next, Dir: d})
		}
	}
	return out
}

// Len returns the number of mapped cells.
func (m *HouseMap) Len() int {
	return len(m.cells)
}

// ReachableCount returns the number of mapped cells still in range.
func (m *HouseMap) ReachableCount() int {
	n := 0
	for _, c := range m.cells {
		if c.Reachable {
			n++
		}
	}
	return n
}

// Positions returns every mapped position in row-major order.
func (m *HouseMap) Positions() []core.Position {
	out := make([]core.Position, 0, len(m.cells))
	for p := range m.cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Complete reports whether every reachable cell has been sensed and the
// reachable dirt sums to zero.
func (m *HouseMap) Complete() bool {
	sum := 0
	for _, c := range m.cells {
		if !c.Reachable {
			continue
		}
		if c.Dirt == core.Undiscovered {
			return false
		}
		if c.Dirt <= core.MaxDirt {
			sum += c.Dirt
		}
	}
	return sum == 0
}

// Neighbor pairs an adjacent position with the heading that reaches it.
type Neighbor struct {
	Pos core.Position
	Dir core.Direction
}
