package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac/internal/core"
)

func TestTrace(t *testing.T) {
	h := parse(t, "t\nMaxSteps = 100\nMaxBattery = 10\nRows = 1\nCols = 2\nD3")
	frames := Trace(h, stepsOf("EsssWsF"))
	require.Len(t, frames, 8)

	dock := h.Dock
	east := dock.Move(core.East)

	assert.Equal(t, Frame{Pos: dock, Battery: 10, DirtLeft: 3}, frames[0])
	assert.Equal(t, Frame{Step: core.StepEast, Pos: east, Battery: 9, DirtLeft: 3}, frames[1])
	assert.Equal(t, Frame{Step: core.Stay, Pos: east, Battery: 8, DirtLeft: 2, Cleaned: true}, frames[2])
	assert.Equal(t, 0, frames[4].DirtLeft)
	assert.Equal(t, Frame{Step: core.StepWest, Pos: dock, Battery: 5, DirtLeft: 0}, frames[5])
	assert.Equal(t, 5.5, frames[6].Battery)
	assert.Equal(t, core.Finish, frames[7].Step)

	// the parsed house is untouched
	assert.Equal(t, 3, h.TotalDirt())
}

func TestTraceStops(t *testing.T) {
	h := parse(t, "t\nMaxSteps = 100\nMaxBattery = 1\nRows = 1\nCols = 3\nD")

	frames := Trace(h, stepsOf("EEE"))
	assert.Len(t, frames, 3, "battery runs out on the second move")

	frames = Trace(h, stepsOf("NE"))
	require.Len(t, frames, 2)
	assert.True(t, h.IsWall(frames[1].Pos))
}
