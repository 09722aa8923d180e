// Package widgets provides Gio UI widgets for the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/robovac/internal/vis/draw"
	"github.com/elektrokombinacija/robovac/internal/vis/interact"
	"github.com/elektrokombinacija/robovac/internal/vis/state"
)

// trailLength is how many past frames the trail shows.
const trailLength = 40

// Workspace is the main house view.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Layout renders the house at the current playback frame.
func (w *Workspace) Layout(gtx layout.Context) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	h := w.state.House
	w.camera.FitHouse(h.Rows, h.Cols, float32(bounds.X), float32(bounds.Y))
	w.handlePointerEvents(gtx)

	draw.DrawHouse(gtx, w.state, h.Rows, h.Cols, h.Dock, w.camera)
	draw.DrawPathTrail(gtx, w.state.PathHistory(trailLength), w.camera, draw.ColorRobot, 4)

	frame := w.state.CurrentFrame()
	row, col := w.state.RobotPosition()
	draw.DrawRobot(gtx, row, col, frame.Step, frame.Cleaned, w.camera)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(pe)
		}
	}
}
