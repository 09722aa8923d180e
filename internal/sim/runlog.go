package sim

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// logCode classifies a tick for the per-run log.
type logCode int

const (
	noLog logCode = iota
	logFinished
	logCleaning
	logCharging
	logExploring
	logBatteryExhausted
	logOutOfSteps
	logStuck
)

// repeatable reports whether the code is written on consecutive ticks.
func (c logCode) repeatable() bool {
	return c != logCharging && c != logStuck
}

// runLog is the human-readable per-step log of one run.
type runLog struct {
	f    *os.File
	w    *bufio.Writer
	prev logCode
}

func openRunLog(dir string, h *House, algo string) (*runLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, h.Name+"-"+algo+".log"))
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}
	l := &runLog{f: f, w: bufio.NewWriter(f)}
	fmt.Fprintf(l.w, "Log File: %s\n\n", h.Description)
	return l, nil
}

func (l *runLog) Close() error {
	if err := l.w.Flush(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}

func (s *Simulator) logCode(step core.Step) logCode {
	switch {
	case batteryMeter{&s.robot}.BatteryState() == 0 && !s.atDock():
		return logBatteryExhausted
	case s.numSteps == s.house.MaxSteps:
		return logOutOfSteps
	case step == core.Finish:
		return logFinished
	case s.house.Surrounded(s.robot.pos):
		return logStuck
	case step == core.Stay && s.atDock():
		return logCharging
	case step == core.Stay:
		return logCleaning
	default:
		return logExploring
	}
}

func (s *Simulator) logStep(step core.Step) {
	if s.log == nil {
		return
	}
	code := s.logCode(step)
	prev := s.log.prev
	s.log.prev = code
	if code == noLog || (!code.repeatable() && code == prev) {
		return
	}

	w := s.log.w
	fmt.Fprintf(w, "[%d] ", s.numSteps)
	switch code {
	case logFinished:
		fmt.Fprint(w, "Finished at the docking station")
	case logCleaning:
		p := s.robot.pos
		fmt.Fprintf(w, "Cleaned at location (%d,%d)", p.Row-1, p.Col-1)
	case logCharging:
		fmt.Fprint(w, "At the docking station, charging")
	case logExploring:
		fmt.Fprintf(w, "Exploring towards %s", step)
	case logBatteryExhausted:
		fmt.Fprint(w, "Battery exhausted")
	case logOutOfSteps:
		fmt.Fprint(w, "Out of steps")
	case logStuck:
		fmt.Fprint(w, "Surrounded by walls")
	}
	fmt.Fprintln(w)
}
