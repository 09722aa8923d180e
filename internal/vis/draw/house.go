// Package draw provides rendering functions for visualization.
package draw

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
)

// Cell colors
var (
	ColorFloor = color.NRGBA{R: 60, G: 66, B: 74, A: 255}
	ColorWall  = color.NRGBA{R: 20, G: 22, B: 26, A: 255}
	ColorDock  = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorDirt  = color.NRGBA{R: 150, G: 105, B: 60, A: 255}
	ColorGrid  = color.NRGBA{R: 40, G: 45, B: 50, A: 255}
)

// Grid is what DrawHouse needs to know about a house at a point in time.
type Grid interface {
	IsWall(p core.Position) bool
	DirtAt(p core.Position) int
}

// DirtColor blends floor into dirt by level, 1..MaxDirt.
func DirtColor(level int) color.NRGBA {
	if level <= 0 {
		return ColorFloor
	}
	a := float32(min(level, core.MaxDirt)) / core.MaxDirt
	return lerp(ColorFloor, ColorDirt, 0.25+0.75*a)
}

func lerp(a, b color.NRGBA, t float32) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + t*(float32(y)-float32(x)))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// DrawHouse fills every cell of a rows x cols grid.
func DrawHouse(gtx layout.Context, g Grid, rows, cols int, dock core.Position, camera *interact.Camera) {
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := core.Position{Row: r, Col: c}
			col := DirtColor(g.DirtAt(p))
			switch {
			case g.IsWall(p):
				col = ColorWall
			case p == dock:
				col = ColorDock
			}
			DrawCell(gtx, float64(r), float64(c), camera, col, 1)
		}
	}
}

// DrawCell fills one cell, inset by gap screen pixels on each side.
func DrawCell(gtx layout.Context, row, col float64, camera *interact.Camera, fill color.NRGBA, gap int) {
	x0, y0 := camera.CellToScreen(row, col)
	x1, y1 := camera.CellToScreen(row+1, col+1)
	rect := image.Rect(int(x0)+gap, int(y0)+gap, int(x1)-gap, int(y1)-gap)
	if rect.Empty() {
		return
	}
	paint.FillShape(gtx.Ops, fill, clip.Rect(rect).Op())
}
