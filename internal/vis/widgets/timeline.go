package widgets

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/vis/draw"
	"github.com/elektrokombinacija/robovac/internal/vis/state"
)

const (
	timelineHeight = 76
	trackMargin    = 20
	trackTop       = 8
	trackHeight    = 36
	columnWidth    = 3
)

var (
	colorTimelineBg = color.NRGBA{R: 35, G: 38, B: 42, A: 255}
	colorBattery    = color.NRGBA{R: 120, G: 200, B: 120, A: 255}
	colorPlayhead   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Timeline scrubs through the recorded steps. The track plots the dirt
// left as bars and the battery as a line, dimmed past the playhead.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a new timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

// track is the horizontal extent of the plot in pixels.
type track struct {
	x0, width int
}

func newTrack(gtx layout.Context) track {
	return track{x0: trackMargin, width: max(gtx.Constraints.Max.X-2*trackMargin, 1)}
}

// time maps a screen x to a whole playback step.
func (tr track) time(x float32, maxTime float64) float64 {
	frac := (float64(x) - float64(tr.x0)) / float64(tr.width)
	return math.Round(math.Max(0, math.Min(1, frac)) * maxTime)
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Constraints.Max.X
	paint.FillShape(gtx.Ops, colorTimelineBg, clip.Rect(image.Rect(0, 0, width, timelineHeight)).Op())

	tr := newTrack(gtx)
	t.handlePointerEvents(gtx, tr)
	t.drawProfile(gtx, tr)
	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: width, Y: timelineHeight}}
}

func (t *Timeline) drawProfile(gtx layout.Context, tr track) {
	samples := t.state.Profile(max(tr.width/columnWidth, 1))
	if len(samples) == 0 {
		return
	}
	playhead := tr.x0 + int(float64(tr.width)*t.state.Playback.Progress())
	bottom := trackTop + trackHeight

	paint.FillShape(gtx.Ops, draw.ColorFloor, clip.Rect(image.Rect(tr.x0, trackTop, tr.x0+tr.width, bottom)).Op())

	for i, s := range samples {
		x0 := tr.x0 + i*tr.width/len(samples)
		x1 := tr.x0 + (i+1)*tr.width/len(samples)
		past := x0 < playhead

		if s.Dirt > 0 {
			fill := draw.DirtColor(int(math.Ceil(s.Dirt * core.MaxDirt)))
			if !past {
				fill.A = 110
			}
			top := bottom - int(math.Ceil(s.Dirt*trackHeight))
			paint.FillShape(gtx.Ops, fill, clip.Rect(image.Rect(x0, top, x1, bottom)).Op())
		}

		line := colorBattery
		if !past {
			line.A = 110
		}
		y := bottom - int(s.Battery*trackHeight)
		paint.FillShape(gtx.Ops, line, clip.Rect(image.Rect(x0, y-1, x1, y+1)).Op())
	}

	paint.FillShape(gtx.Ops, colorPlayhead, clip.Rect(image.Rect(playhead-1, trackTop-3, playhead+1, bottom+3)).Op())
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	pb := t.state.Playback
	frame := t.state.CurrentFrame()

	last := "start"
	if t.state.FrameIndex() > 0 {
		last = frame.Step.String()
	}

	label := func(s string, c color.NRGBA, align text.Alignment) layout.Widget {
		l := material.Label(th, 12, s)
		l.Color = c
		l.Alignment = align
		return l.Layout
	}

	layout.Inset{Top: unit.Dp(trackTop + trackHeight + 6), Left: unit.Dp(trackMargin), Right: unit.Dp(trackMargin)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(label(fmt.Sprintf("step %d / %d", t.state.FrameIndex(), int(pb.MaxTime)),
					color.NRGBA{R: 200, G: 200, B: 200, A: 255}, text.Start)),
				layout.Rigid(label(fmt.Sprintf("battery %.2f / %d   dirt %d   %s",
					frame.Battery, t.state.House.MaxBattery, frame.DirtLeft, last),
					color.NRGBA{R: 150, G: 150, B: 150, A: 255}, text.Middle)),
				layout.Rigid(label(fmt.Sprintf("%.1f steps/s", pb.Speed),
					color.NRGBA{R: 150, G: 180, B: 200, A: 255}, text.End)),
			)
		})
}

// handlePointerEvents seeks on press and while dragging.
func (t *Timeline) handlePointerEvents(gtx layout.Context, tr track) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, timelineHeight)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	pb := t.state.Playback
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			return
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch {
		case pe.Kind == pointer.Press:
			t.dragging = true
			pb.SetTime(tr.time(pe.Position.X, pb.MaxTime))
		case pe.Kind == pointer.Drag && t.dragging:
			pb.SetTime(tr.time(pe.Position.X, pb.MaxTime))
		case pe.Kind == pointer.Release:
			t.dragging = false
		}
	}
}
