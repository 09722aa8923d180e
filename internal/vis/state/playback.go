package state

import "time"

// PlaybackState manages replay timing. Time is measured in steps.
type PlaybackState struct {
	CurrentTime float64 // Current playback position in steps
	MaxTime     float64 // Number of recorded steps
	Speed       float64 // Steps per second
	Playing     bool
	lastUpdate  time.Time
}

// DefaultSpeed is the initial replay rate in steps per second.
const DefaultSpeed = 4.0

// NewPlaybackState creates a new playback state.
func NewPlaybackState(maxTime float64) *PlaybackState {
	return &PlaybackState{
		MaxTime:    maxTime,
		Speed:      DefaultSpeed,
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback on/off.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		// Reset to start if at end
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Play starts playback.
func (p *PlaybackState) Play() {
	p.Playing = true
	p.lastUpdate = time.Now()
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset resets to beginning.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance advances playback by the wall time elapsed since the last update.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.advanceBy(now.Sub(p.lastUpdate))
	p.lastUpdate = now
}

func (p *PlaybackState) advanceBy(elapsed time.Duration) {
	p.CurrentTime += elapsed.Seconds() * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime sets the current playback time.
func (p *PlaybackState) SetTime(t float64) {
	p.CurrentTime = max(0, min(t, p.MaxTime))
}

// StepForward pauses and moves to the next whole step.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(float64(int(p.CurrentTime) + 1))
}

// StepBack pauses and moves to the previous whole step.
func (p *PlaybackState) StepBack() {
	p.Pause()
	t := float64(int(p.CurrentTime))
	if t == p.CurrentTime {
		t--
	}
	p.SetTime(t)
}

// SetSpeed sets the replay rate, clamped to [0.5, 200] steps per second.
func (p *PlaybackState) SetSpeed(speed float64) {
	p.Speed = max(0.5, min(speed, 200))
}

// Progress returns current progress as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
