package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// HouseExt is the extension of house description files.
const HouseExt = ".house"

// wall marks a wall cell in House.grid; other values are dirt levels.
const wall = -1

// House is a parsed house file. The grid is padded with a wall border, so
// every in-bounds position has four in-bounds neighbours.
type House struct {
	Name        string
	Description string
	MaxSteps    int
	MaxBattery  int

	// Rows and Cols include the wall padding.
	Rows int
	Cols int

	Dock core.Position

	grid [][]int
}

// HouseError reports an invalid house file.
type HouseError struct {
	Name string
	Msg  string
}

func (e *HouseError) Error() string {
	return fmt.Sprintf("house %s: %s", e.Name, e.Msg)
}

// HouseName strips directories and the .house extension from path.
func HouseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), HouseExt)
}

// LoadHouse reads and parses a house file.
func LoadHouse(path string) (*House, error) {
	name := HouseName(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, &HouseError{Name: name, Msg: fmt.Sprintf("open: %v", err)}
	}
	defer f.Close()
	return ParseHouse(name, f)
}

// ParseHouse reads the house format: a description line, the four
// "Key = value" header lines and the grid rows. Short rows and missing
// lines are clean floor, unknown characters are clean floor, and exactly
// one 'D' must appear.
func ParseHouse(name string, r io.Reader) (*House, error) {
	sc := bufio.NewScanner(r)
	h := &House{Name: name}

	if !sc.Scan() {
		return nil, &HouseError{Name: name, Msg: "missing description line"}
	}
	h.Description = strings.TrimRight(sc.Text(), "\r")

	header := []struct {
		key string
		dst *int
	}{
		{"MaxSteps", &h.MaxSteps},
		{"MaxBattery", &h.MaxBattery},
		{"Rows", &h.Rows},
		{"Cols", &h.Cols},
	}
	for _, field := range header {
		if !sc.Scan() {
			return nil, &HouseError{Name: name, Msg: fmt.Sprintf("missing %s line", field.key)}
		}
		v, err := parseHeader(sc.Text(), field.key)
		if err != nil {
			return nil, &HouseError{Name: name, Msg: err.Error()}
		}
		*field.dst = v
	}

	rows, cols := h.Rows, h.Cols
	h.Rows, h.Cols = rows+2, cols+2
	h.grid = make([][]int, h.Rows)
	for i := range h.grid {
		h.grid[i] = make([]int, h.Cols)
		h.grid[i][0] = wall
		h.grid[i][h.Cols-1] = wall
	}
	for j := 0; j < h.Cols; j++ {
		h.grid[0][j] = wall
		h.grid[h.Rows-1][j] = wall
	}

	docks := 0
	for i := 0; i < rows; i++ {
		line := ""
		if sc.Scan() {
			line = strings.TrimRight(sc.Text(), "\r")
		}
		for j := 0; j < cols && j < len(line); j++ {
			switch ch := line[j]; {
			case ch == 'D':
				docks++
				if docks > 1 {
					return nil, &HouseError{Name: name, Msg: "more than one docking station"}
				}
				h.Dock = core.Position{Row: i + 1, Col: j + 1}
			case ch == 'W':
				h.grid[i+1][j+1] = wall
			case ch >= '0' && ch <= '9':
				h.grid[i+1][j+1] = int(ch - '0')
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &HouseError{Name: name, Msg: fmt.Sprintf("read: %v", err)}
	}
	if docks == 0 {
		return nil, &HouseError{Name: name, Msg: "docking station not found"}
	}

	return h, nil
}

func parseHeader(line, key string) (int, error) {
	k, v, ok := strings.Cut(line, "=")
	if !ok || strings.TrimSpace(k) != key {
		return 0, fmt.Errorf("expected %q header, got %q", key+" = <n>", strings.TrimSpace(line))
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value %q", key, strings.TrimSpace(v))
	}
	return n, nil
}

// Clone returns a copy whose grid can be cleaned independently.
func (h *House) Clone() *House {
	c := *h
	c.grid = make([][]int, len(h.grid))
	for i, row := range h.grid {
		c.grid[i] = append([]int(nil), row...)
	}
	return &c
}

// InBounds reports whether p lies inside the padded grid.
func (h *House) InBounds(p core.Position) bool {
	return p.Row >= 0 && p.Row < h.Rows && p.Col >= 0 && p.Col < h.Cols
}

// IsWall reports whether p is a wall. Out-of-bounds positions are walls.
func (h *House) IsWall(p core.Position) bool {
	return !h.InBounds(p) || h.grid[p.Row][p.Col] == wall
}

// Dirt returns the dirt level at p, 0 for walls.
func (h *House) Dirt(p core.Position) int {
	if h.IsWall(p) {
		return 0
	}
	return h.grid[p.Row][p.Col]
}

// Clean removes one unit of dirt at p and reports whether any was there.
func (h *House) Clean(p core.Position) bool {
	if h.Dirt(p) <= 0 {
		return false
	}
	h.grid[p.Row][p.Col]--
	return true
}

// TotalDirt sums the dirt over the whole grid.
func (h *House) TotalDirt() int {
	sum := 0
	for _, row := range h.grid {
		for _, v := range row {
			if v > 0 {
				sum += v
			}
		}
	}
	return sum
}

// Surrounded reports whether all four neighbours of p are walls.
func (h *House) Surrounded(p core.Position) bool {
	for _, d := range core.Directions {
		if !h.IsWall(p.Move(d)) {
			return false
		}
	}
	return true
}
