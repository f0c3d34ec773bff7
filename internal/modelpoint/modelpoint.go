// Package modelpoint reads model point sets: CSV tables of input records
// whose columns formulas read as `set.column`.
package modelpoint

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Record is one row of a model point set.
type Record struct {
	ID     string
	values map[string]cty.Value
}

// Object returns the record as a cty object with one attribute per column.
func (r Record) Object() cty.Value {
	if len(r.values) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(r.values)
}

// Value returns the value of a column.
func (r Record) Value(column string) (cty.Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Set is a table of records keyed by an identifier column.
type Set struct {
	Name     string
	IDColumn string
	Columns  []string
	records  []Record
	index    map[string]int
}

// Load reads the CSV file at path.
func Load(name, path, idColumn string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model point set '%s': %w", name, err)
	}
	defer f.Close()

	s, err := Parse(name, f, idColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads a CSV table with a header row. Cells that parse as numbers
// become cty numbers, every other cell stays a string.
func Parse(name string, r io.Reader, idColumn string) (*Set, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("model point set '%s' is empty", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of model point set '%s': %w", name, err)
	}

	idPos := -1
	seen := make(map[string]bool, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		header[i] = col
		if seen[col] {
			return nil, fmt.Errorf("model point set '%s' has duplicate column %q", name, col)
		}
		seen[col] = true
		if col == idColumn {
			idPos = i
		}
	}
	if idPos < 0 {
		return nil, fmt.Errorf("model point set '%s' has no id column %q", name, idColumn)
	}

	s := &Set{Name: name, IDColumn: idColumn, Columns: header, index: make(map[string]int)}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read model point set '%s': %w", name, err)
		}

		id := strings.TrimSpace(row[idPos])
		if _, dup := s.index[id]; dup {
			return nil, fmt.Errorf("model point set '%s' has duplicate id %q in column %q", name, id, idColumn)
		}

		values := make(map[string]cty.Value, len(header))
		for i, col := range header {
			values[col] = cell(row[i])
		}
		s.index[id] = len(s.records)
		s.records = append(s.records, Record{ID: id, values: values})
	}
	return s, nil
}

func cell(raw string) cty.Value {
	raw = strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return cty.NumberFloatVal(f)
	}
	return cty.StringVal(raw)
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.records)
}

// Records returns the records in file order.
func (s *Set) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Lookup returns the record with the given id.
func (s *Set) Lookup(id string) (Record, bool) {
	i, ok := s.index[id]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// Only returns a copy of the set holding the single record with id.
func (s *Set) Only(id string) (*Set, error) {
	r, ok := s.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("model point set '%s' has no record with id %q", s.Name, id)
	}
	return &Set{
		Name:     s.Name,
		IDColumn: s.IDColumn,
		Columns:  s.Columns,
		records:  []Record{r},
		index:    map[string]int{id: 0},
	}, nil
}
