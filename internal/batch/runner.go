// Package batch runs every (algorithm, house) pair of a house directory on a
// bounded worker pool and collects the scores into a summary.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/robovac/internal/algo"
	"github.com/elektrokombinacija/robovac/internal/sim"
)

// Options configures a batch.
type Options struct {
	HouseDir string

	// Algorithms selects registry names. Empty means every registered one.
	Algorithms []string

	NumThreads  int
	SummaryOnly bool
	WriteLog    bool

	// OutDir receives summary.csv and the outputs/, logs/ and errors/
	// directories.
	OutDir string

	TimeoutCoefficient int

	// AlgorithmOptions looks up the options for one strategy. Nil means
	// every strategy gets its defaults.
	AlgorithmOptions func(name string) map[string]any

	Logger  *slog.Logger
	Metrics *Metrics
}

// Runner executes one batch.
type Runner struct {
	reg  *algo.Registry
	opts Options
	errs *errorLog
}

// NewRunner creates a runner over the strategies in reg.
func NewRunner(reg *algo.Registry, opts Options) *Runner {
	if opts.NumThreads <= 0 {
		opts.NumThreads = 1
	}
	if opts.TimeoutCoefficient <= 0 {
		opts.TimeoutCoefficient = sim.DefaultConfig().TimeoutCoefficient
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if len(opts.Algorithms) == 0 {
		opts.Algorithms = reg.Names()
	}
	return &Runner{reg: reg, opts: opts, errs: newErrorLog()}
}

type houseEntry struct {
	name  string
	house *sim.House
	err   error
}

// Run simulates every pair and writes the error files. The summary is
// returned even if ctx is cancelled part way; unfinished pairs score 0.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	logger := r.opts.Logger.With("run", runID)
	errDir := filepath.Join(r.opts.OutDir, "errors")

	paths, err := findHouses(r.opts.HouseDir)
	if err != nil {
		r.errs.add("houses", runID, err.Error())
		if ferr := r.errs.flush(errDir); ferr != nil {
			logger.Error("writing error files", "error", ferr)
		}
		return nil, err
	}

	houses := make([]houseEntry, len(paths))
	for i, p := range paths {
		h, err := sim.LoadHouse(p)
		houses[i] = houseEntry{name: sim.HouseName(p), house: h, err: err}
	}

	sum := &Summary{
		RunID:      runID,
		Algorithms: append([]string(nil), r.opts.Algorithms...),
		Houses:     make([]string, len(houses)),
		Scores:     make([][]int, len(r.opts.Algorithms)),
	}
	for j, h := range houses {
		sum.Houses[j] = h.name
	}
	for i := range sum.Scores {
		sum.Scores[i] = make([]int, len(houses))
	}

	logger.Info("batch started",
		"houses", len(houses), "algorithms", len(sum.Algorithms), "threads", r.opts.NumThreads)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.NumThreads)
	for i, name := range sum.Algorithms {
		for j := range houses {
			g.Go(func() error {
				sum.Scores[i][j] = r.runPair(gctx, logger, runID, name, houses[j])
				return nil
			})
		}
	}
	_ = g.Wait()

	if err := r.errs.flush(errDir); err != nil {
		return sum, fmt.Errorf("writing error files: %w", err)
	}
	logger.Info("batch finished")
	return sum, ctx.Err()
}

// runPair returns the score of one simulation. Failures are recorded in the
// error file of their owner.
func (r *Runner) runPair(ctx context.Context, logger *slog.Logger, runID, name string, h houseEntry) int {
	if h.err != nil {
		r.errs.add(h.name, runID, h.err.Error())
		return 0
	}

	var options map[string]any
	if r.opts.AlgorithmOptions != nil {
		options = r.opts.AlgorithmOptions(name)
	}
	strategy, err := r.reg.New(name, options)
	if err != nil {
		r.errs.add(name, runID, fmt.Sprintf("%s: %v", h.name, err))
		return 0
	}

	logger = logger.With("house", h.name, "algorithm", name)
	cfg := sim.Config{
		TimeoutCoefficient: r.opts.TimeoutCoefficient,
		WriteOutput:        !r.opts.SummaryOnly,
		OutputDir:          filepath.Join(r.opts.OutDir, "outputs"),
		WriteLog:           r.opts.WriteLog,
		LogDir:             filepath.Join(r.opts.OutDir, "logs"),
		Logger:             logger,
	}
	res, err := sim.Run(ctx, h.house, name, algo.NewEngine(strategy, algo.WithLogger(logger)), cfg)
	if res != nil && r.opts.Metrics != nil {
		r.opts.Metrics.Observe(res)
	}
	if err == nil {
		return res.Score
	}

	var re *sim.RunError
	if !errors.As(err, &re) {
		r.errs.add(name, runID, fmt.Sprintf("%s: %v", h.name, err))
		return 0
	}
	switch re.Owner {
	case sim.OwnerHouse:
		r.errs.add(h.name, runID, fmt.Sprintf("%s: %s", name, re.Msg))
	case sim.OwnerAlgorithm:
		r.errs.add(name, runID, fmt.Sprintf("%s: %s", h.name, re.Msg))
	default:
		r.errs.add("Simulator", runID, fmt.Sprintf("%s/%s: %s", h.name, name, re.Msg))
	}
	logger.Warn("run failed", "owner", re.Owner, "error", err)
	return re.Score
}

func findHouses(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("house path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("house path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading house path: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == sim.HouseExt {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
