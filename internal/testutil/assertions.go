package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Table is a CSV file read back from a run.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads the single file of the given kind ("output" or
// "diagnostic") written by a run.
func ReadTable(t *testing.T, result *HarnessResult, kind string) *Table {
	t.Helper()
	require.NoError(t, result.Err, "run failed; logs:\n%s", result.LogOutput)

	files, err := filepath.Glob(filepath.Join(result.OutputDir, "*_"+kind+".csv"))
	require.NoError(t, err)
	require.Len(t, files, 1, "expected exactly one %s file", kind)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	return &Table{Header: records[0], Rows: records[1:]}
}

// Column returns the values of a numeric column.
func (tb *Table) Column(t *testing.T, name string) []float64 {
	t.Helper()
	i := slices.Index(tb.Header, name)
	require.GreaterOrEqual(t, i, 0, "column %q not in %v", name, tb.Header)

	out := make([]float64, len(tb.Rows))
	for r, row := range tb.Rows {
		v, err := strconv.ParseFloat(row[i], 64)
		require.NoError(t, err)
		out[r] = v
	}
	return out
}

// AssertColumn checks a numeric column against want within a small tolerance.
func AssertColumn(t *testing.T, tb *Table, name string, want []float64) {
	t.Helper()
	require.InDeltaSlice(t, want, tb.Column(t, name), 1e-9, "column %q", name)
}

// AssertLogged checks that the run's logs contain substr.
func AssertLogged(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.True(t, strings.Contains(result.LogOutput, substr), "expected %q in logs:\n%s", substr, result.LogOutput)
}
