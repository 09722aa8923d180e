// Package config loads robovac settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultNumThreads bounds concurrent simulations when nothing is set.
const DefaultNumThreads = 10

// Config is the on-disk configuration.
type Config struct {
	Simulator SimulatorConfig `yaml:"simulator"`
	Runner    RunnerConfig    `yaml:"runner"`

	// Algorithms holds per-strategy options keyed by registry name.
	Algorithms map[string]map[string]any `yaml:"algorithms"`
}

// SimulatorConfig tunes a single run.
type SimulatorConfig struct {
	// TimeoutCoefficient is the wall-clock allowance in milliseconds per
	// MaxSteps of the house.
	TimeoutCoefficient int `yaml:"timeoutCoefficient"`
}

// RunnerConfig tunes the batch runner.
type RunnerConfig struct {
	NumThreads int `yaml:"numThreads"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Simulator:  SimulatorConfig{TimeoutCoefficient: 10},
		Runner:     RunnerConfig{NumThreads: DefaultNumThreads},
		Algorithms: map[string]map[string]any{},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config YAML: %w", err)
	}
	if cfg.Algorithms == nil {
		cfg.Algorithms = map[string]map[string]any{}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings no run could honour.
func (c Config) Validate() error {
	if c.Simulator.TimeoutCoefficient <= 0 {
		return fmt.Errorf("simulator.timeoutCoefficient must be positive, got %d", c.Simulator.TimeoutCoefficient)
	}
	if c.Runner.NumThreads <= 0 {
		return fmt.Errorf("runner.numThreads must be positive, got %d", c.Runner.NumThreads)
	}
	return nil
}

// AlgorithmOptions returns the options for one strategy, or nil.
func (c Config) AlgorithmOptions(name string) map[string]any {
	return c.Algorithms[name]
}
