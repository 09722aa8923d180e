package algo

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// RangeRadius is the number of BFS rings expanded around the dock:
// ceil(maxBattery/2).
func RangeRadius(maxBattery int) int {
	if maxBattery <= 0 {
		return 0
	}
	return (maxBattery + 1) / 2
}

// MarkUnreachable expands RangeRadius(maxBattery) rings from the dock over
// planning neighbours. Every mapped cell that was not expanded is marked
// unreachable and added to visited. Newly excluded positions are returned
// in row-major order.
func MarkUnreachable(m *HouseMap, visited mapset.Set[core.Position], maxBattery int) []core.Position {
	radius := RangeRadius(maxBattery)
	if radius == 0 {
		return nil
	}

	expanded := mapset.New[core.Position]()
	seen := mapset.New[core.Position]()
	seen.Put(core.Dock)
	ring := []core.Position{core.Dock}

	for i := 0; i < radius && len(ring) > 0; i++ {
		var next []core.Position
		for _, pos := range ring {
			expanded.Put(pos)
			for _, n := range m.Neighbors(pos) {
				if seen.Has(n.Pos) {
					continue
				}
				seen.Put(n.Pos)
				next = append(next, n.Pos)
			}
		}
		ring = next
	}

	var excluded []core.Position
	for _, pos := range m.Positions() {
		if expanded.Has(pos) || !m.IsReachable(pos) {
			continue
		}
		m.MarkUnreachable(pos)
		visited.Put(pos)
		excluded = append(excluded, pos)
	}
	return excluded
}
