package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TimestampLayout names output files, e.g. 20250131_142501_output.csv.
const TimestampLayout = "20060102_150405"

// Table is a header and rows of already formatted cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteCSV writes t to w as CSV.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// FileName returns the path of an output file of the given kind.
func FileName(dir string, ts time.Time, kind string) string {
	return filepath.Join(dir, ts.Format(TimestampLayout)+"_"+kind+".csv")
}

// WriteFile writes t to path, creating the parent directory if needed.
func WriteFile(path string, t *Table) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, t)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
