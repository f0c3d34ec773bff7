package output

import (
	"fmt"
	"strconv"
)

// Options shape the result table.
type Options struct {
	// TMax is the last period written.
	TMax int
	// Columns are the variables written, in order.
	Columns []string
	// Aggregate sums every record per period.
	Aggregate bool
	// GroupBy, with Aggregate, sums per distinct group value and names the
	// leading column.
	GroupBy string
	// IDColumn names the leading column of non-aggregated output.
	IDColumn string
}

type block struct {
	key    string
	values [][]float64 // per column, per period
}

// Results accumulates evaluated records into a table.
type Results struct {
	opts   Options
	blocks []*block
	index  map[string]*block
}

// NewResults creates an empty accumulator.
func NewResults(opts Options) (*Results, error) {
	if opts.TMax < 0 {
		return nil, fmt.Errorf("invalid output period %d", opts.TMax)
	}
	if opts.IDColumn == "" {
		opts.IDColumn = "id"
	}
	return &Results{opts: opts, index: make(map[string]*block)}, nil
}

// Add adds one record's series. id identifies the record; group is its
// GroupBy value and is ignored unless grouping is enabled.
func (r *Results) Add(id, group string, series map[string][]float64) error {
	key := id
	switch {
	case r.opts.Aggregate && r.opts.GroupBy != "":
		key = group
	case r.opts.Aggregate:
		key = ""
	}

	b, ok := r.index[key]
	if !ok {
		b = &block{key: key, values: make([][]float64, len(r.opts.Columns))}
		for i := range b.values {
			b.values[i] = make([]float64, r.opts.TMax+1)
		}
		r.index[key] = b
		r.blocks = append(r.blocks, b)
	} else if !r.opts.Aggregate {
		return fmt.Errorf("duplicate record '%s'", id)
	}

	for i, col := range r.opts.Columns {
		s, ok := series[col]
		if !ok {
			return fmt.Errorf("record '%s' has no series for '%s'", id, col)
		}
		if len(s) < r.opts.TMax+1 {
			return fmt.Errorf("series '%s' of record '%s' has %d periods, want %d", col, id, len(s), r.opts.TMax+1)
		}
		for t := 0; t <= r.opts.TMax; t++ {
			b.values[i][t] += s[t]
		}
	}
	return nil
}

// Table renders the accumulated results.
func (r *Results) Table() *Table {
	var lead string
	switch {
	case r.opts.Aggregate && r.opts.GroupBy != "":
		lead = r.opts.GroupBy
	case !r.opts.Aggregate:
		lead = r.opts.IDColumn
	}

	t := &Table{}
	if lead != "" {
		t.Header = append(t.Header, lead)
	}
	t.Header = append(t.Header, "t")
	t.Header = append(t.Header, r.opts.Columns...)

	for _, b := range r.blocks {
		for p := 0; p <= r.opts.TMax; p++ {
			row := make([]string, 0, len(t.Header))
			if lead != "" {
				row = append(row, b.key)
			}
			row = append(row, strconv.Itoa(p))
			for i := range r.opts.Columns {
				row = append(row, formatNumber(b.values[i][p]))
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}
