package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
)

// DrawPathTrail draws a fading trail through the centres of the visited
// cells, oldest first.
func DrawPathTrail(gtx layout.Context, history []core.Position, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	n := len(history)
	if n < 2 {
		return
	}

	for i := 0; i < n-1; i++ {
		// Fade alpha from start to end
		col := baseColor
		col.A = uint8(40 + float64(i)/float64(n)*160)
		w := maxWidth * camera.Zoom * (0.3 + 0.7*float32(i)/float32(n))

		a, b := history[i], history[i+1]
		x1, y1 := camera.CellToScreen(float64(a.Row)+0.5, float64(a.Col)+0.5)
		x2, y2 := camera.CellToScreen(float64(b.Row)+0.5, float64(b.Col)+0.5)
		drawLine(gtx, x1, y1, x2, y2, w, col)
	}
}
