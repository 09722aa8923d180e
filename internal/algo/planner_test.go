package algo

import (
	"testing"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// squareMap maps an n x n open block with the dock in the top-left corner.
func squareMap(n int) *HouseMap {
	m := NewHouseMap()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			p := core.Position{Row: r, Col: c}
			m.Insert(p)
			m.SetDirt(p, 0)
		}
	}
	return m
}

func TestShortestPathTailFirst(t *testing.T) {
	m := corridorMap(4)
	path, ok := ShortestPath(m, core.Position{Row: 0, Col: 3}, core.Dock)
	if !ok {
		t.Fatalf("ShortestPath along corridor failed")
	}
	if path.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", path.Len())
	}
	for i := 0; i < 3; i++ {
		d, ok := path.Pop()
		if !ok || d != core.West {
			t.Errorf("Pop() #%d = %v, %v, want West", i, d, ok)
		}
	}
	if _, ok := path.Pop(); ok {
		t.Errorf("Pop() on drained path should fail")
	}
}

func TestShortestPathTieBreak(t *testing.T) {
	m := squareMap(3)
	// Both North-first and West-first routes have length 2.
	path, ok := ShortestPath(m, core.Position{Row: 1, Col: 1}, core.Dock)
	if !ok {
		t.Fatalf("ShortestPath failed")
	}
	got := path.Walk(core.Position{Row: 1, Col: 1})
	want := []core.Position{{Row: 0, Col: 1}, core.Dock}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Walk() = %v, want %v", got, want)
	}
}

func TestShortestPathEdgeCases(t *testing.T) {
	m := corridorMap(3)

	path, ok := ShortestPath(m, core.Dock, core.Dock)
	if !ok || !path.Empty() {
		t.Errorf("src == dst: got %v, %v, want empty path and ok", path, ok)
	}

	if _, ok := ShortestPath(m, core.Dock, core.Position{Row: 5, Col: 5}); ok {
		t.Errorf("unknown target should not be reachable")
	}

	m.MarkUnreachable(core.Position{Row: 0, Col: 1})
	if _, ok := ShortestPath(m, core.Dock, core.Position{Row: 0, Col: 2}); ok {
		t.Errorf("path must not cross unreachable cells")
	}
	if d := Distance(m, core.Dock, core.Position{Row: 0, Col: 2}); d != -1 {
		t.Errorf("Distance() = %d, want -1", d)
	}
}

func TestShortestPathUsesOnlyMappedCells(t *testing.T) {
	m := squareMap(4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			src := core.Position{Row: r, Col: c}
			path, ok := ShortestPath(m, src, core.Dock)
			if !ok {
				t.Fatalf("no path from %v", src)
			}
			if path.Len() != r+c {
				t.Errorf("Len() from %v = %d, want %d", src, path.Len(), r+c)
			}
			for _, p := range path.Walk(src) {
				if !m.IsReachable(p) {
					t.Errorf("path from %v crosses %v", src, p)
				}
			}
		}
	}
}
