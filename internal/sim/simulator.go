// Package sim runs a navigation algorithm against a house file and scores
// the outcome.
//
// The simulator owns the physics: one dirt unit is cleaned per Stay, a
// Stay on the dock charges MaxBattery/20 and costs nothing, and every
// other step costs one battery unit.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// Config configures a single simulation.
type Config struct {
	// TimeoutCoefficient is the wall-clock allowance in milliseconds per
	// MaxSteps of the house.
	TimeoutCoefficient int

	// WriteOutput enables <OutputDir>/<house>-<algo>.txt.
	WriteOutput bool
	OutputDir   string

	// WriteLog enables the per-step log <LogDir>/<house>-<algo>.log.
	WriteLog bool
	LogDir   string

	Logger *slog.Logger
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{
		TimeoutCoefficient: 10,
		WriteOutput:        true,
		OutputDir:          "outputs",
		WriteLog:           false,
		LogDir:             "logs",
		Logger:             slog.New(slog.DiscardHandler),
	}
}

// Owner names the party responsible for a failed run.
type Owner int

const (
	OwnerHouse Owner = iota
	OwnerAlgorithm
	OwnerSimulator
)

func (o Owner) String() string {
	return [...]string{"House", "Algorithm", "Simulator"}[o]
}

// RunError is a failure attributed to an owner. Score is the score the
// run is still charged with.
type RunError struct {
	Owner Owner
	Msg   string
	Score int
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Owner, e.Msg)
}

var (
	errOutOfSteps       = errors.New("out of steps")
	errBatteryExhausted = errors.New("battery exhausted")
)

// Result summarises one finished run.
type Result struct {
	House     string
	Algorithm string

	NumSteps    int
	MaxSteps    int
	InitialDirt int
	DirtLeft    int
	Status      Status
	InDock      bool
	Score       int
	Steps       []core.Step

	TimedOut bool
	Elapsed  time.Duration
}

// faulter is implemented by algorithms that record navigation faults.
type faulter interface {
	Err() error
}

type robot struct {
	house      *House
	pos        core.Position
	battery    float64
	maxBattery int
}

// charge adds MaxBattery/20, capped at the maximum and rounded up at the
// fifth decimal.
func (r *robot) charge() {
	b := math.Min(r.battery+float64(r.maxBattery)/20, float64(r.maxBattery))
	r.battery = math.Ceil(b*1e5) / 1e5
}

func (r *robot) drain() error {
	if r.battery <= 0 {
		return errBatteryExhausted
	}
	r.battery--
	return nil
}

// step applies one action other than Finish and reports whether a Stay
// removed dirt. Staying on the dock charges instead of draining.
func (r *robot) step(s core.Step) (cleaned bool, err error) {
	prev := r.pos
	if s == core.Stay {
		cleaned = r.house.Clean(r.pos)
		if r.pos == r.house.Dock {
			r.charge()
		}
	}
	r.pos = r.pos.Apply(s)

	if prev == r.house.Dock && r.pos == prev {
		return cleaned, nil
	}
	return cleaned, r.drain()
}

// Simulator runs one algorithm on one house.
type Simulator struct {
	mu sync.Mutex

	cfg      Config
	house    *House
	algoName string
	algo     core.Algorithm

	robot    robot
	numSteps int
	steps    []core.Step
	status   Status
	initDirt int

	log *runLog
}

// New prepares a run. The house is cloned, so one parsed house can feed
// many simulators.
func New(house *House, algoName string, a core.Algorithm, cfg Config) *Simulator {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	h := house.Clone()
	return &Simulator{
		cfg:      cfg,
		house:    h,
		algoName: algoName,
		algo:     a,
		robot: robot{
			house:      h,
			pos:        h.Dock,
			battery:    float64(h.MaxBattery),
			maxBattery: h.MaxBattery,
		},
		initDirt: h.TotalDirt(),
	}
}

// Run ticks the algorithm until it finishes, faults, runs out of steps or
// battery, or exceeds TimeoutCoefficient*MaxSteps milliseconds. The result
// is returned even when err is a *RunError.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timeout := time.Duration(s.cfg.TimeoutCoefficient*max(s.house.MaxSteps, 1)) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := s.cfg.Logger.With("house", s.house.Name, "algorithm", s.algoName)
	start := time.Now()

	if s.cfg.WriteLog {
		l, err := openRunLog(s.cfg.LogDir, s.house, s.algoName)
		if err != nil {
			return nil, &RunError{Owner: OwnerSimulator, Msg: err.Error()}
		}
		s.log = l
		defer s.log.Close()
	}

	s.algo.SetMaxSteps(s.house.MaxSteps)
	s.algo.SetWallsSensor(wallsSensor{&s.robot})
	s.algo.SetDirtSensor(dirtSensor{&s.robot})
	s.algo.SetBatteryMeter(batteryMeter{&s.robot})

	var (
		inWall    bool
		timedOut  bool
		cancelled bool
		algoErr   error
	)

	logger.Debug("run started", "maxSteps", s.house.MaxSteps, "maxBattery", s.house.MaxBattery, "dirt", s.initDirt)

loop:
	for {
		select {
		case <-ctx.Done():
			timedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
			cancelled = !timedOut
			break loop
		default:
		}

		if s.house.IsWall(s.robot.pos) {
			inWall = true
			break
		}

		step := s.algo.NextStep()
		if f, ok := s.algo.(faulter); ok {
			algoErr = f.Err()
		}

		err := s.handleStep(step)
		s.logStep(step)
		if err != nil {
			s.handleFault(err)
			logger.Debug("run stopped", "reason", err, "steps", s.numSteps)
			break
		}
		if step == core.Finish || algoErr != nil {
			break
		}
	}

	res := s.result()
	res.TimedOut = timedOut
	res.Elapsed = time.Since(start)
	if timedOut {
		res.Score = TimeoutScore(s.house.MaxSteps, s.initDirt)
	}

	if s.cfg.WriteOutput {
		if err := WriteOutput(s.cfg.OutputDir, res); err != nil {
			return res, &RunError{Owner: OwnerSimulator, Msg: err.Error(), Score: res.Score}
		}
	}

	logger.Info("run finished",
		"status", res.Status, "steps", res.NumSteps, "dirtLeft", res.DirtLeft,
		"inDock", res.InDock, "score", res.Score, "elapsed", res.Elapsed)

	switch {
	case inWall:
		return res, &RunError{Owner: OwnerAlgorithm, Msg: fmt.Sprintf("robot moved into a wall at %v", s.robot.pos), Score: res.Score}
	case algoErr != nil:
		return res, &RunError{Owner: OwnerAlgorithm, Msg: fmt.Sprintf("navigation fault: %v", algoErr), Score: res.Score}
	case timedOut:
		return res, &RunError{Owner: OwnerAlgorithm, Msg: fmt.Sprintf("timeout reached at %dms", timeout.Milliseconds()), Score: res.Score}
	case cancelled:
		return res, &RunError{Owner: OwnerSimulator, Msg: "run cancelled", Score: res.Score}
	}
	return res, nil
}

func (s *Simulator) handleStep(step core.Step) error {
	if s.numSteps == s.house.MaxSteps {
		s.steps = append(s.steps, core.Finish)
		return errOutOfSteps
	}

	s.steps = append(s.steps, step)
	if step == core.Finish {
		s.status = Finished
		return nil
	}
	s.numSteps++

	_, err := s.robot.step(step)
	return err
}

func (s *Simulator) handleFault(err error) {
	switch {
	case errors.Is(err, errBatteryExhausted):
		s.status = Dead
	case errors.Is(err, errOutOfSteps):
		s.status = Finished
	}
}

func (s *Simulator) atDock() bool {
	return s.robot.pos == s.house.Dock
}

func (s *Simulator) result() *Result {
	res := &Result{
		House:       s.house.Name,
		Algorithm:   s.algoName,
		NumSteps:    s.numSteps,
		MaxSteps:    s.house.MaxSteps,
		InitialDirt: s.initDirt,
		DirtLeft:    s.house.TotalDirt(),
		Status:      s.status,
		InDock:      s.atDock(),
		Steps:       append([]core.Step(nil), s.steps...),
	}
	res.Score = Score(res.Status, res.InDock, res.NumSteps, res.MaxSteps, res.DirtLeft)
	return res
}

// Run is shorthand for New(house, algoName, a, cfg).Run(ctx).
func Run(ctx context.Context, house *House, algoName string, a core.Algorithm, cfg Config) (*Result, error) {
	return New(house, algoName, a, cfg).Run(ctx)
}
