package algo

import (
	"errors"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// ErrNoPath is recorded when a plan is required but the target cannot be
// reached through the mapped, reachable cells.
var ErrNoPath = errors.New("no path through mapped cells")

// Path is a route stored tail-first: the last element is the next move.
type Path []core.Direction

// Len returns the number of remaining moves.
func (p Path) Len() int { return len(p) }

// Empty reports whether no moves remain.
func (p Path) Empty() bool { return len(p) == 0 }

// Pop removes and returns the next move.
func (p *Path) Pop() (core.Direction, bool) {
	n := len(*p)
	if n == 0 {
		return 0, false
	}
	d := (*p)[n-1]
	*p = (*p)[:n-1]
	return d, true
}

// Walk replays the path from src and returns the visited positions in
// travel order, src excluded.
func (p Path) Walk(src core.Position) []core.Position {
	out := make([]core.Position, 0, len(p))
	cur := src
	for i := len(p) - 1; i >= 0; i-- {
		cur = cur.Move(p[i])
		out = append(out, cur)
	}
	return out
}

type parentLink struct {
	from core.Position
	dir  core.Direction
}

// ShortestPath runs BFS from src to dst over m.Neighbors. Equal-length
// alternatives resolve by direction order. ok is false when dst cannot be
// reached; src == dst yields an empty path and ok.
func ShortestPath(m *HouseMap, src, dst core.Position) (Path, bool) {
	if src == dst {
		return Path{}, true
	}

	seen := mapset.New[core.Position]()
	parent := make(map[core.Position]parentLink)
	q := queue.New[core.Position]()

	q.Enqueue(src)
	seen.Put(src)

	for !q.Empty() {
		cur := q.Dequeue()
		if cur == dst {
			var path Path
			for at := dst; at != src; {
				link := parent[at]
				path = append(path, link.dir)
				at = link.from
			}
			return path, true
		}

		for _, n := range m.Neighbors(cur) {
			if seen.Has(n.Pos) {
				continue
			}
			seen.Put(n.Pos)
			parent[n.Pos] = parentLink{from: cur, dir: n.Dir}
			q.Enqueue(n.Pos)
		}
	}

	return nil, false
}

// Distance returns the BFS length between two cells, or -1 when disconnected.
func Distance(m *HouseMap, src, dst core.Position) int {
	p, ok := ShortestPath(m, src, dst)
	if !ok {
		return -1
	}
	return p.Len()
}
