// Package interact handles pan and zoom of the house view.
package interact

import (
	"gioui.org/io/pointer"
)

// CellSize is the edge of one house cell in world units.
const CellSize = 40.0

const (
	minZoom = 0.1
	maxZoom = 10
)

// Camera manages view transformation (pan and zoom).
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32 // Zoom level (1.0 = 100%)

	// fitted is false until the first FitHouse, and again after Reset.
	fitted bool

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a new camera with default settings.
func NewCamera() *Camera {
	return &Camera{OffsetX: 20, OffsetY: 20, Zoom: 1.0}
}

// Reset restores the default view; the next FitHouse refits the house.
func (c *Camera) Reset() {
	*c = *NewCamera()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// CellToScreen returns the screen position of the top-left corner of a
// grid cell. Fractional cells are allowed for animation.
func (c *Camera) CellToScreen(row, col float64) (x, y float32) {
	return c.WorldToScreen(col*CellSize, row*CellSize)
}

// ScreenToCell returns the cell under a screen point.
func (c *Camera) ScreenToCell(x, y float32) (row, col int) {
	wx, wy := c.ScreenToWorld(x, y)
	return floorDiv(wy), floorDiv(wx)
}

func floorDiv(w float64) int {
	i := int(w / CellSize)
	if w < 0 && float64(i)*CellSize != w {
		i--
	}
	return i
}

// HandleEvent processes pointer events: any button drags, the wheel zooms
// around the pointer.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		c.dragging = true
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		factor := float32(1.1)
		if ev.Scroll.Y > 0 {
			factor = 1 / factor
		}
		c.ZoomBy(factor, ev.Position.X, ev.Position.Y)
	}
	c.fitted = true
}

// Pan pans the camera by the given screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy zooms by a factor, keeping the world point under (centerX,
// centerY) fixed.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)
	c.Zoom = clampZoom(c.Zoom * factor)

	newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - newScreenX
	c.OffsetY += centerY - newScreenY
}

// CenterOn centers the camera on a world position.
func (c *Camera) CenterOn(worldX, worldY float64, screenWidth, screenHeight float32) {
	c.OffsetX = screenWidth/2 - float32(worldX)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(worldY)*c.Zoom
}

// FitBounds adjusts camera to fit the given world bounds.
func (c *Camera) FitBounds(minX, minY, maxX, maxY float64, screenWidth, screenHeight float32, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY
	if worldW <= 0 || worldH <= 0 {
		return
	}

	zoomX := (screenWidth - 2*margin) / float32(worldW)
	zoomY := (screenHeight - 2*margin) / float32(worldH)
	c.Zoom = clampZoom(min(zoomX, zoomY))

	c.CenterOn((minX+maxX)/2, (minY+maxY)/2, screenWidth, screenHeight)
}

// FitHouse fits a rows x cols grid once; later calls are no-ops until the
// user resets the view, so manual pan and zoom survive redraws.
func (c *Camera) FitHouse(rows, cols int, screenWidth, screenHeight float32) {
	if c.fitted {
		return
	}
	c.FitBounds(0, 0, float64(cols)*CellSize, float64(rows)*CellSize, screenWidth, screenHeight, 20)
	c.fitted = true
}

func clampZoom(z float32) float32 {
	return max(minZoom, min(z, maxZoom))
}
