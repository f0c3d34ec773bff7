package builder

import (
	"fmt"

	"github.com/specialistvlad/cashgridgo/internal/dag"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/nodeid"
)

// ModelGraph builds the whole-model graph over vars. Dependencies whose
// caller or callee is not among vars are skipped.
func ModelGraph(vars []*model.Variable, deps []model.Dependency) *dag.Graph {
	g := dag.New()
	for _, v := range vars {
		g.AddNode(v.Name)
	}
	link(g, deps)
	return g
}

// CycleGraph builds the graph restricted to members, using only the given
// dependencies among them.
func CycleGraph(members []string, deps []model.Dependency) *dag.Graph {
	g := dag.New()
	for _, m := range members {
		g.AddNode(m)
	}
	link(g, deps)
	return g
}

func link(g *dag.Graph, deps []model.Dependency) {
	for _, d := range deps {
		if g.HasNode(d.Callee) && g.HasNode(d.Caller) {
			// Both endpoints exist, so AddEdge cannot fail.
			_ = g.AddEdge(d.Callee, d.Caller)
		}
	}
}

// PeriodGraph builds the expanded graph whose nodes are nodeid.Address
// strings for every variable and period in [0, tMax].
//
// For a dependency active at caller period p the callee cell is:
//
//	t    -> (callee, p)
//	t-1  -> (callee, p-1), skipped at p = 0
//	t+1  -> (callee, p+1), skipped at p = tMax
//	none -> (callee, q) for every q in [0, tMax]
func PeriodGraph(vars []*model.Variable, deps []model.Dependency, tMax int) (*dag.Graph, error) {
	if tMax < 0 {
		return nil, fmt.Errorf("invalid maximum period %d", tMax)
	}

	g := dag.New()
	known := model.NamesOf(vars)
	for _, v := range vars {
		for p := 0; p <= tMax; p++ {
			g.AddNode(nodeid.New(v.Name, p).String())
		}
	}

	for _, d := range deps {
		if !known.Has(d.Caller) || !known.Has(d.Callee) {
			continue
		}
		for _, p := range d.Periods.Periods() {
			if p > tMax {
				break
			}
			to := nodeid.New(d.Caller, p)
			for _, from := range calleeCells(d, p, tMax) {
				if err := g.AddEdge(from.String(), to.String()); err != nil {
					return nil, fmt.Errorf("failed to link %s to %s: %w", from, to, err)
				}
			}
		}
	}
	return g, nil
}

func calleeCells(d model.Dependency, p, tMax int) []nodeid.Address {
	switch d.Argument {
	case model.ArgT:
		return []nodeid.Address{nodeid.New(d.Callee, p)}
	case model.ArgPrev:
		if p >= 1 {
			return []nodeid.Address{nodeid.New(d.Callee, p-1)}
		}
	case model.ArgNext:
		if p+1 <= tMax {
			return []nodeid.Address{nodeid.New(d.Callee, p+1)}
		}
	default:
		cells := make([]nodeid.Address, 0, tMax+1)
		for q := 0; q <= tMax; q++ {
			cells = append(cells, nodeid.New(d.Callee, q))
		}
		return cells
	}
	return nil
}
