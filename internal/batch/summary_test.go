package batch

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCSV(t *testing.T) {
	sum := &Summary{
		Algorithms: []string{"dfs", "spiral"},
		Houses:     []string{"a", "b", "c"},
		Scores: [][]int{
			{12, 0, 0},
			{15, 0, 3100},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, sum.WriteCSV(&buf))
	assert.Equal(t, "Algorithms,a,b,c\ndfs,12,0,0\nspiral,15,0,3100\n", buf.String())

	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, sum.WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms,a,c\ndfs,12,0\nspiral,15,3100\n", string(data))
}

func TestSummaryValidWithoutAlgorithms(t *testing.T) {
	sum := &Summary{Houses: []string{"a"}}
	assert.Equal(t, []string{"a"}, sum.Valid().Houses)
}
