package draw

import (
	"image/color"
	"testing"

	"github.com/elektrokombinacija/robovac/internal/core"
)

func TestDirtColor(t *testing.T) {
	if DirtColor(0) != ColorFloor {
		t.Errorf("clean cell should use the floor color")
	}
	if DirtColor(core.MaxDirt) != ColorDirt {
		t.Errorf("DirtColor(MaxDirt) = %v, want %v", DirtColor(core.MaxDirt), ColorDirt)
	}
	if DirtColor(50) != DirtColor(core.MaxDirt) {
		t.Errorf("levels above MaxDirt should saturate")
	}
	if DirtColor(1).R <= ColorFloor.R {
		t.Errorf("light dirt should already differ from the floor")
	}
}

func TestRobotColor(t *testing.T) {
	tests := []struct {
		step    core.Step
		cleaned bool
		want    string
	}{
		{core.StepEast, false, "move"},
		{core.Stay, true, "clean"},
		{core.Stay, false, "move"},
		{core.Finish, false, "done"},
	}
	colors := map[string]color.NRGBA{"move": ColorRobot, "clean": ColorRobotClean, "done": ColorRobotDone}
	for _, tt := range tests {
		if got := RobotColor(tt.step, tt.cleaned); got != colors[tt.want] {
			t.Errorf("RobotColor(%v, %v) = %v, want %s", tt.step, tt.cleaned, got, tt.want)
		}
	}
}
