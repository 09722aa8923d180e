package state

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/sim"
)

func newReplay(t *testing.T) *State {
	t.Helper()
	h, err := sim.ParseHouse("t", strings.NewReader("t\nMaxSteps = 100\nMaxBattery = 10\nRows = 1\nCols = 2\nD3"))
	require.NoError(t, err)
	out, err := sim.DecodeOutput(strings.NewReader("NumSteps = 5\nDirtLeft = 0\nStatus = FINISHED\nInDock = TRUE\nScore = 5\nSteps\nEsssWF\n"))
	require.NoError(t, err)
	st, err := NewState(h, out)
	require.NoError(t, err)
	return st
}

func TestReplayFrames(t *testing.T) {
	st := newReplay(t)
	require.Len(t, st.Frames, 7)
	assert.Equal(t, 6.0, st.Playback.MaxTime)

	dock := st.House.Dock
	east := dock.Move(core.East)

	assert.Equal(t, 3, st.DirtAt(east))
	st.Playback.SetTime(2)
	assert.Equal(t, 2, st.DirtAt(east))
	st.Playback.SetTime(4.5)
	assert.Equal(t, 0, st.DirtAt(east))
	assert.Equal(t, 4, st.FrameIndex())

	st.Playback.SetTime(0.5)
	row, col := st.RobotPosition()
	assert.Equal(t, float64(dock.Row), row)
	assert.Equal(t, float64(dock.Col)+0.5, col)

	st.Playback.SetTime(100)
	assert.Equal(t, core.Finish, st.CurrentFrame().Step)
	row, col = st.RobotPosition()
	assert.Equal(t, float64(dock.Row), row)
	assert.Equal(t, float64(dock.Col), col)
}

func TestPathHistory(t *testing.T) {
	st := newReplay(t)
	st.Playback.SetTime(5)

	dock := st.House.Dock
	east := dock.Move(core.East)
	assert.Equal(t, []core.Position{east, east, dock}, st.PathHistory(3))
	assert.Len(t, st.PathHistory(100), 6)
}

func TestNewStateRequiresInputs(t *testing.T) {
	_, err := NewState(nil, nil)
	assert.Error(t, err)
}

func TestPlayback(t *testing.T) {
	p := NewPlaybackState(10)

	p.StepForward()
	assert.Equal(t, 1.0, p.CurrentTime)
	p.SetTime(2.5)
	p.StepBack()
	assert.Equal(t, 2.0, p.CurrentTime)
	p.StepBack()
	assert.Equal(t, 1.0, p.CurrentTime)

	p.Play()
	p.advanceBy(time.Second)
	assert.Equal(t, 1+DefaultSpeed, p.CurrentTime)
	p.advanceBy(time.Minute)
	assert.Equal(t, 10.0, p.CurrentTime)
	assert.False(t, p.Playing)
	assert.Equal(t, 1.0, p.Progress())

	p.TogglePlay()
	assert.True(t, p.Playing)
	assert.Zero(t, p.CurrentTime)

	p.SetSpeed(1000)
	assert.Equal(t, 200.0, p.Speed)
	p.SetSpeed(0)
	assert.Equal(t, 0.5, p.Speed)
}

func TestProfile(t *testing.T) {
	st := newReplay(t)

	assert.Nil(t, st.Profile(0))

	p := st.Profile(7)
	require.Len(t, p, 7)
	wantDirt := []float64{1, 1, 2.0 / 3, 1.0 / 3, 0, 0, 0}
	wantBattery := []float64{1, 0.9, 0.8, 0.7, 0.6, 0.5, 0.5}
	for i := range p {
		assert.InDelta(t, wantDirt[i], p[i].Dirt, 1e-9, "dirt in column %d", i)
		assert.InDelta(t, wantBattery[i], p[i].Battery, 1e-9, "battery in column %d", i)
	}

	one := st.Profile(1)
	require.Len(t, one, 1)
	assert.Zero(t, one[0].Dirt)
	assert.InDelta(t, 0.5, one[0].Battery, 1e-9)

	wide := st.Profile(20)
	require.Len(t, wide, 20)
	assert.InDelta(t, 1.0, wide[0].Dirt, 1e-9)
	assert.Zero(t, wide[19].Dirt)
}
