package sim

// Status is the final state of a run.
type Status int

const (
	Working Status = iota
	Finished
	Dead
)

func (s Status) String() string {
	return [...]string{"WORKING", "FINISHED", "DEAD"}[s]
}

// Penalties applied by Score.
const (
	DirtPenalty         = 300
	NotInDockPenalty    = 1000
	DeadPenalty         = 2000
	FinishedAwayPenalty = 3000
)

// Score ranks a run; lower is better.
func Score(status Status, inDock bool, numSteps, maxSteps, dirtLeft int) int {
	score := dirtLeft * DirtPenalty
	switch status {
	case Finished:
		if inDock {
			score += numSteps
		} else {
			score += maxSteps + FinishedAwayPenalty
		}
	case Dead:
		score += maxSteps + DeadPenalty
	case Working:
		score += numSteps
		if !inDock {
			score += NotInDockPenalty
		}
	}
	return score
}

// TimeoutScore replaces Score for runs that exceeded their time budget.
func TimeoutScore(maxSteps, initialDirt int) int {
	return maxSteps*2 + initialDirt*DirtPenalty + DeadPenalty
}
