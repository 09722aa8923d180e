package core

import "testing"

func TestPositionMove(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Position
	}{
		{North, Position{-1, 0}},
		{East, Position{0, 1}},
		{South, Position{1, 0}},
		{West, Position{0, -1}},
	}

	for _, tt := range tests {
		got := Dock.Move(tt.dir)
		if got != tt.want {
			t.Errorf("Dock.Move(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestStepBetween(t *testing.T) {
	p := Position{2, 3}
	for _, d := range Directions {
		got, ok := StepBetween(p, p.Move(d))
		if !ok || got != StepOf(d) {
			t.Errorf("StepBetween(%v, %v) = %v, %v, want %v", p, p.Move(d), got, ok, StepOf(d))
		}
	}

	if _, ok := StepBetween(p, Position{4, 4}); ok {
		t.Errorf("StepBetween should reject non-adjacent cells")
	}
}

func TestDirectionRotate(t *testing.T) {
	if got := North.Rotate(true); got != East {
		t.Errorf("North.Rotate(true) = %v, want East", got)
	}
	if got := North.Rotate(false); got != West {
		t.Errorf("North.Rotate(false) = %v, want West", got)
	}
	if got := West.Rotate(true); got != North {
		t.Errorf("West.Rotate(true) = %v, want North", got)
	}
}

func TestStepCodes(t *testing.T) {
	for s := StepNorth; s <= Finish; s++ {
		back, ok := ParseStep(s.Code()[0])
		if !ok || back != s {
			t.Errorf("ParseStep(%q) = %v, %v, want %v", s.Code(), back, ok, s)
		}
	}

	if _, ok := ParseStep('x'); ok {
		t.Errorf("ParseStep('x') should fail")
	}
}

func TestApply(t *testing.T) {
	p := Position{1, 1}
	if got := p.Apply(Stay); got != p {
		t.Errorf("Apply(Stay) = %v, want %v", got, p)
	}
	if got := p.Apply(Finish); got != p {
		t.Errorf("Apply(Finish) = %v, want %v", got, p)
	}
	if got := p.Apply(StepSouth); got != (Position{2, 1}) {
		t.Errorf("Apply(South) = %v, want (2,1)", got)
	}
}
