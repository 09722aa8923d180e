package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac/internal/algo"
)

const (
	tinyHouse = "Tiny\nMaxSteps = 100\nMaxBattery = 10\nRows = 1\nCols = 2\nD3\n"
	boxHouse  = "Box\nMaxSteps = 100\nMaxBattery = 10\nRows = 1\nCols = 1\nD\n"
	twoDocks  = "Broken\nMaxSteps = 100\nMaxBattery = 10\nRows = 1\nCols = 3\nD D\n"
)

func writeHouses(t *testing.T, houses map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range houses {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}
	return dir
}

func TestRunnerScoresEveryPair(t *testing.T) {
	houseDir := writeHouses(t, map[string]string{
		"tiny.house":   tinyHouse,
		"box.house":    boxHouse,
		"broken.house": twoDocks,
		"notes.txt":    "not a house",
	})
	out := t.TempDir()
	metrics := NewMetrics()

	r := NewRunner(algo.DefaultRegistry(), Options{
		HouseDir:   houseDir,
		NumThreads: 2,
		OutDir:     out,
		Metrics:    metrics,
	})
	sum, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, []string{"dfs", "spiral"}, sum.Algorithms)
	assert.Equal(t, []string{"box", "broken", "tiny"}, sum.Houses)
	assert.Equal(t, [][]int{{0, 0, 5}, {0, 0, 5}}, sum.Scores)

	// a perfect run on box also scores 0, so its column goes too
	valid := sum.Valid()
	assert.Equal(t, []string{"tiny"}, valid.Houses)

	for _, name := range []string{"tiny-dfs.txt", "tiny-spiral.txt", "box-dfs.txt"} {
		assert.FileExists(t, filepath.Join(out, "outputs", name))
	}
	assert.NoFileExists(t, filepath.Join(out, "outputs", "broken-dfs.txt"))

	data, err := os.ReadFile(filepath.Join(out, "errors", "broken.error"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "more than one docking station")
	assert.Contains(t, string(data), sum.RunID)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.runs.WithLabelValues("dfs", "finished")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.runs.WithLabelValues("spiral", "finished")))
}

func TestRunnerSummaryOnly(t *testing.T) {
	houseDir := writeHouses(t, map[string]string{"tiny.house": tinyHouse})
	out := t.TempDir()

	r := NewRunner(algo.DefaultRegistry(), Options{
		HouseDir:    houseDir,
		Algorithms:  []string{"dfs"},
		NumThreads:  1,
		SummaryOnly: true,
		WriteLog:    true,
		OutDir:      out,
	})
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]int{{5}}, sum.Scores)

	assert.NoDirExists(t, filepath.Join(out, "outputs"))
	assert.FileExists(t, filepath.Join(out, "logs", "tiny-dfs.log"))
	assert.NoDirExists(t, filepath.Join(out, "errors"))
}

func TestRunnerAlgorithmErrors(t *testing.T) {
	houseDir := writeHouses(t, map[string]string{"tiny.house": tinyHouse})
	out := t.TempDir()

	r := NewRunner(algo.DefaultRegistry(), Options{
		HouseDir:   houseDir,
		Algorithms: []string{"dfs", "nope"},
		OutDir:     out,
		AlgorithmOptions: func(name string) map[string]any {
			if name == "dfs" {
				return map[string]any{"seed": 1}
			}
			return nil
		},
	})
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {0}}, sum.Scores)

	for _, owner := range []string{"dfs", "nope"} {
		assert.FileExists(t, filepath.Join(out, "errors", owner+".error"))
	}
}

func TestRunnerMissingHouseDir(t *testing.T) {
	out := t.TempDir()
	r := NewRunner(algo.DefaultRegistry(), Options{
		HouseDir: filepath.Join(out, "missing"),
		OutDir:   out,
	})
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(out, "errors", "houses.error"))
}
