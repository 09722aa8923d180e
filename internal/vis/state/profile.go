package state

// Sample summarises the frames that fall into one column of the timeline.
type Sample struct {
	// Dirt is the dirt left at the end of the column relative to the
	// starting dirt, in [0, 1].
	Dirt float64
	// Battery is the lowest charge in the column relative to MaxBattery.
	Battery float64
}

// Profile buckets the frames into n columns in playback order. When n
// exceeds the frame count, neighbouring columns share a frame. The result
// is cached until n changes.
func (s *State) Profile(n int) []Sample {
	if n <= 0 || len(s.Frames) == 0 {
		return nil
	}
	if len(s.profile) == n {
		return s.profile
	}

	initDirt := float64(s.Frames[0].DirtLeft)
	maxBattery := float64(max(s.House.MaxBattery, 1))

	out := make([]Sample, n)
	for i := range out {
		lo := i * len(s.Frames) / n
		hi := min(max((i+1)*len(s.Frames)/n, lo+1), len(s.Frames))

		low := s.Frames[lo].Battery
		for _, f := range s.Frames[lo+1 : hi] {
			low = min(low, f.Battery)
		}
		out[i].Battery = low / maxBattery
		if initDirt > 0 {
			out[i].Dirt = float64(s.Frames[hi-1].DirtLeft) / initDirt
		}
	}
	s.profile = out
	return out
}
