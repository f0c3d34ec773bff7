package scheduler

import (
	"github.com/specialistvlad/cashgridgo/internal/model"
)

// Entry holds the scheduling result for one variable.
type Entry struct {
	Variable   string          `json:"variable" yaml:"variable"`
	Kind       model.Kind      `json:"kind" yaml:"kind"`
	CalcOrder  int             `json:"calc_order" yaml:"calc_order"`
	CycleOrder int             `json:"cycle_order" yaml:"cycle_order"`
	Cycle      bool            `json:"cycle" yaml:"cycle"`
	Direction  model.Direction `json:"direction" yaml:"direction"`
}

// Group is the set of entries sharing one calculation order.
type Group struct {
	CalcOrder int
	Cycle     bool
	Direction model.Direction
	Entries   []Entry
}

// Plan is the immutable result of Schedule.
type Plan struct {
	entries []Entry
	index   map[string]int
	deps    []model.Dependency
	tMax    int
}

// Entries returns every entry sorted by calculation order, cycle order
// and name.
func (p *Plan) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Len returns the number of scheduled variables.
func (p *Plan) Len() int {
	return len(p.entries)
}

// Names returns the scheduled variable names in evaluation order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.Variable
	}
	return names
}

// Lookup returns the entry of the named variable.
func (p *Plan) Lookup(name string) (Entry, bool) {
	i, ok := p.index[name]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Groups splits the entries by calculation order.
func (p *Plan) Groups() []Group {
	var groups []Group
	for _, e := range p.entries {
		if n := len(groups); n > 0 && groups[n-1].CalcOrder == e.CalcOrder {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, Group{
			CalcOrder: e.CalcOrder,
			Cycle:     e.Cycle,
			Direction: e.Direction,
			Entries:   []Entry{e},
		})
	}
	return groups
}

// Dependencies returns the dependency records among the scheduled
// variables.
func (p *Plan) Dependencies() []model.Dependency {
	return append([]model.Dependency(nil), p.deps...)
}

// TMax returns the last calculation period the plan was built for.
func (p *Plan) TMax() int {
	return p.tMax
}
