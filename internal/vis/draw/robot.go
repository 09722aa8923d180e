package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
)

// Robot colors by the last step
var (
	ColorRobot      = color.NRGBA{R: 100, G: 200, B: 255, A: 255}
	ColorRobotClean = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorRobotDone  = color.NRGBA{R: 200, G: 100, B: 255, A: 255}
	ColorHeading    = color.NRGBA{R: 25, G: 28, B: 32, A: 255}
)

// RobotColor returns the robot color for the step that led to the frame.
func RobotColor(s core.Step, cleaned bool) color.NRGBA {
	switch {
	case s == core.Finish:
		return ColorRobotDone
	case cleaned:
		return ColorRobotClean
	default:
		return ColorRobot
	}
}

// DrawRobot draws the robot as a disc centred in the (fractional) cell,
// with a notch towards its heading when the last step was a move.
func DrawRobot(gtx layout.Context, row, col float64, s core.Step, cleaned bool, camera *interact.Camera) {
	cx, cy := camera.CellToScreen(row+0.5, col+0.5)
	r := float32(interact.CellSize) * 0.35 * camera.Zoom

	drawFilledCircle(gtx, cx, cy, r, RobotColor(s, cleaned))

	d, ok := s.Direction()
	if !ok {
		return
	}
	dx, dy := headingVector(d)
	drawLine(gtx, cx, cy, cx+dx*r, cy+dy*r, 3*camera.Zoom, ColorHeading)
}

// headingVector returns the screen-space unit vector of d; rows grow
// downwards.
func headingVector(d core.Direction) (dx, dy float32) {
	switch d {
	case core.North:
		return 0, -1
	case core.East:
		return 1, 0
	case core.South:
		return 0, 1
	default:
		return -1, 0
	}
}

func drawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+radius, cy))

	segments := 20
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.LineTo(f32.Pt(x, y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
