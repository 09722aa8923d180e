package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Missing File Yields Defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default().Simulator, cfg.Simulator)
		assert.Equal(t, DefaultNumThreads, cfg.Runner.NumThreads)
	})

	t.Run("Overrides Merge With Defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "robovac.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
simulator:
  timeoutCoefficient: 3
algorithms:
  spiral:
    spiralClockwise: false
    seed: 9
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Simulator.TimeoutCoefficient)
		assert.Equal(t, DefaultNumThreads, cfg.Runner.NumThreads)

		opts := cfg.AlgorithmOptions("spiral")
		assert.Equal(t, false, opts["spiralClockwise"])
		assert.Equal(t, 9, opts["seed"])
		assert.Nil(t, cfg.AlgorithmOptions("dfs"))
	})

	t.Run("Rejects Bad Values", func(t *testing.T) {
		_, err := Parse([]byte("simulator:\n  timeoutCoefficient: -1\n"))
		assert.Error(t, err)

		_, err = Parse([]byte("runner:\n  numThreads: 0\n"))
		assert.Error(t, err)
	})

	t.Run("Rejects Malformed YAML", func(t *testing.T) {
		_, err := Parse([]byte("simulator: [1, 2"))
		assert.Error(t, err)
	})
}
