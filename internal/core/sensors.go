package core

// WallsSensor reports whether the neighbour in a direction is a wall.
type WallsSensor interface {
	IsWall(d Direction) bool
}

// DirtSensor reports the dirt level (0..MaxDirt) under the robot.
type DirtSensor interface {
	DirtLevel() int
}

// BatteryMeter reports the remaining battery in whole steps.
type BatteryMeter interface {
	BatteryState() int
}

// Algorithm is the contract between the simulator and a navigation engine.
// The setters are called once before the first NextStep.
type Algorithm interface {
	SetMaxSteps(maxSteps int)
	SetWallsSensor(s WallsSensor)
	SetDirtSensor(s DirtSensor)
	SetBatteryMeter(m BatteryMeter)
	NextStep() Step
}
