package sim

import "github.com/elektrokombinacija/robovac/internal/core"

// Frame is the robot state right after one step of a recorded run.
type Frame struct {
	Step     core.Step
	Pos      core.Position
	Battery  float64
	DirtLeft int
	Cleaned  bool
}

// Trace replays steps on a copy of house with the simulator physics. The
// first frame is the starting state and its Step is meaningless; every
// other frame follows one step. Replay stops after Finish, after the step
// that empties the battery, and after a step into a wall.
func Trace(house *House, steps []core.Step) []Frame {
	h := house.Clone()
	r := robot{
		house:      h,
		pos:        h.Dock,
		battery:    float64(h.MaxBattery),
		maxBattery: h.MaxBattery,
	}
	dirt := h.TotalDirt()

	frames := make([]Frame, 0, len(steps)+1)
	frames = append(frames, Frame{Pos: r.pos, Battery: r.battery, DirtLeft: dirt})

	for _, s := range steps {
		if s == core.Finish {
			frames = append(frames, Frame{Step: s, Pos: r.pos, Battery: r.battery, DirtLeft: dirt})
			break
		}
		cleaned, err := r.step(s)
		if cleaned {
			dirt--
		}
		frames = append(frames, Frame{Step: s, Pos: r.pos, Battery: r.battery, DirtLeft: dirt, Cleaned: cleaned})
		if err != nil || h.IsWall(r.pos) {
			break
		}
	}
	return frames
}
