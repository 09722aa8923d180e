package sim

import "github.com/elektrokombinacija/robovac/internal/core"

// The sensors read the live robot state, so an algorithm always sees the
// current tick.

type wallsSensor struct{ r *robot }

func (s wallsSensor) IsWall(d core.Direction) bool {
	return s.r.house.IsWall(s.r.pos.Move(d))
}

type dirtSensor struct{ r *robot }

func (s dirtSensor) DirtLevel() int {
	return s.r.house.Dirt(s.r.pos)
}

type batteryMeter struct{ r *robot }

// BatteryState floors the fractional charge to whole steps.
func (m batteryMeter) BatteryState() int {
	if m.r.battery <= 0 {
		return 0
	}
	return int(m.r.battery)
}
