// Package state manages the visualization state.
package state

import (
	"errors"
	"math"

	"github.com/elektrokombinacija/robovac/internal/core"
	"github.com/elektrokombinacija/robovac/internal/sim"
)

// State holds all visualization state for one recorded run.
type State struct {
	House    *sim.House
	Output   *sim.Output
	Frames   []sim.Frame
	Playback *PlaybackState

	// cleanedAt[p] lists the frames where one dirt unit was removed at p.
	cleanedAt map[core.Position][]int

	profile []Sample
}

// NewState replays out on house. Playback time is measured in steps.
func NewState(house *sim.House, out *sim.Output) (*State, error) {
	if house == nil || out == nil {
		return nil, errors.New("state: house and output are required")
	}
	frames := sim.Trace(house, out.Steps)

	cleanedAt := make(map[core.Position][]int)
	for i, f := range frames {
		if f.Cleaned {
			cleanedAt[f.Pos] = append(cleanedAt[f.Pos], i)
		}
	}

	return &State{
		House:     house,
		Output:    out,
		Frames:    frames,
		Playback:  NewPlaybackState(float64(len(frames) - 1)),
		cleanedAt: cleanedAt,
	}, nil
}

// FrameIndex returns the last frame reached at the current playback time.
func (s *State) FrameIndex() int {
	i := int(math.Floor(s.Playback.CurrentTime))
	return max(0, min(i, len(s.Frames)-1))
}

// CurrentFrame returns the frame at the current playback time.
func (s *State) CurrentFrame() sim.Frame {
	return s.Frames[s.FrameIndex()]
}

// RobotPosition returns the robot position interpolated between the
// current and the next frame, as fractional (row, col).
func (s *State) RobotPosition() (row, col float64) {
	i := s.FrameIndex()
	cur := s.Frames[i]
	if i+1 >= len(s.Frames) {
		return float64(cur.Pos.Row), float64(cur.Pos.Col)
	}
	next := s.Frames[i+1]
	alpha := s.Playback.CurrentTime - float64(i)
	row = float64(cur.Pos.Row) + alpha*float64(next.Pos.Row-cur.Pos.Row)
	col = float64(cur.Pos.Col) + alpha*float64(next.Pos.Col-cur.Pos.Col)
	return row, col
}

// DirtAt returns the dirt left at p at the current frame.
func (s *State) DirtAt(p core.Position) int {
	dirt := s.House.Dirt(p)
	frame := s.FrameIndex()
	for _, i := range s.cleanedAt[p] {
		if i > frame {
			break
		}
		dirt--
	}
	return dirt
}

// PathHistory returns up to n positions the robot visited before the
// current frame, oldest first, ending at the current frame.
func (s *State) PathHistory(n int) []core.Position {
	end := s.FrameIndex()
	start := max(0, end-n+1)
	history := make([]core.Position, 0, end-start+1)
	for _, f := range s.Frames[start : end+1] {
		history = append(history, f.Pos)
	}
	return history
}

// IsWall reports whether p is a wall of the replayed house.
func (s *State) IsWall(p core.Position) bool {
	return s.House.IsWall(p)
}
