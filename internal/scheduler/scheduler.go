package scheduler

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/cashgridgo/internal/builder"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/dag"
	"github.com/specialistvlad/cashgridgo/internal/dependency"
	"github.com/specialistvlad/cashgridgo/internal/model"
)

// maxReportedCycles bounds the simple cycles listed in an error.
const maxReportedCycles = 8

// Options are the settings the scheduler reads.
type Options struct {
	// TMaxCalculation is the last period evaluated.
	TMaxCalculation int
	// OutputColumns, when set, restricts the plan to these variables and
	// everything they depend on.
	OutputColumns []string
}

// Schedule assigns every variable a calculation order, cycle order, cycle
// flag and direction. The variables are not modified. Any error is fatal
// and no partial plan is returned.
func Schedule(ctx context.Context, vars []*model.Variable, opts Options) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	tMax := opts.TMaxCalculation
	if tMax < 0 {
		return nil, fmt.Errorf("maximum calculation period must be non-negative, got %d", tMax)
	}
	if err := validateNames(vars); err != nil {
		return nil, err
	}

	deps, err := dependency.ExtractAll(vars, tMax)
	if err != nil {
		return nil, err
	}
	for _, d := range deps {
		if d.Argument == model.ArgNone {
			logger.Warn("Call argument not recognised, assuming dependency on every period.",
				"caller", d.Caller, "callee", d.Callee)
		}
	}

	g := builder.ModelGraph(vars, deps)
	if len(opts.OutputColumns) > 0 {
		retained, err := FilterOutputs(g, opts.OutputColumns)
		if err != nil {
			return nil, err
		}
		keep := make(model.Names, len(retained))
		for _, name := range retained {
			keep[name] = struct{}{}
		}
		vars = retainVars(vars, keep)
		deps = dependency.Within(deps, keep)
		g = g.Subgraph(retained)
		logger.Debug("Restricted model to requested outputs.", "outputs", opts.OutputColumns, "retained", len(retained))
	}

	s := &run{
		vars:    model.ByName(vars),
		deps:    deps,
		tMax:    tMax,
		entries: make(map[string]Entry, len(vars)),
	}
	if err := s.loop(ctx, g); err != nil {
		return nil, err
	}
	return s.plan(), nil
}

// run is the mutable state of one Schedule call.
type run struct {
	vars      map[string]*model.Variable
	deps      []model.Dependency
	tMax      int
	calcOrder int
	entries   map[string]Entry
}

func (s *run) loop(ctx context.Context, g *dag.Graph) error {
	logger := ctxlog.FromContext(ctx)

	for g.Len() > 0 {
		if roots := g.Roots(); len(roots) > 0 {
			s.calcOrder++
			for _, name := range roots {
				s.entries[name] = Entry{
					Variable:   name,
					Kind:       s.vars[name].Kind,
					CalcOrder:  s.calcOrder,
					CycleOrder: 1,
					Direction:  model.Forward,
				}
			}
			g.RemoveNodes(roots...)
			logger.Debug("Stripped variables without pending dependencies.", "calc_order", s.calcOrder, "variables", roots)
			continue
		}

		ready := readyCycles(g)
		if len(ready) == 0 {
			// A non-empty graph without roots always has a source component.
			return fmt.Errorf("no schedulable variables among %v", g.Nodes())
		}
		for _, members := range ready {
			if err := s.resolveCycle(ctx, g, members); err != nil {
				return err
			}
			g.RemoveNodes(members...)
		}
	}
	return nil
}

// readyCycles returns the cyclic components that no pending variable
// outside them feeds into: the ancestors of their first member are exactly
// the members.
func readyCycles(g *dag.Graph) [][]string {
	var ready [][]string
	for _, scc := range g.StronglyConnected() {
		if !g.IsCyclic(scc) {
			continue
		}
		ancestors, err := g.Ancestors(scc[0])
		if err == nil && len(ancestors) == len(scc) {
			ready = append(ready, scc)
		}
	}
	return ready
}

func (s *run) resolveCycle(ctx context.Context, g *dag.Graph, members []string) error {
	logger := ctxlog.FromContext(ctx)

	for _, name := range members {
		if s.vars[name].Kind == model.KindArray {
			return &InvalidCycleError{
				Variable: name,
				Members:  members,
				Cycles:   g.SimpleCycles(members, maxReportedCycles),
			}
		}
	}

	cycleOrder, err := s.rankCycle(members)
	if err != nil {
		return err
	}

	s.calcOrder++
	direction := s.resolveDirection(ctx, members)
	for _, name := range members {
		s.entries[name] = Entry{
			Variable:   name,
			Kind:       s.vars[name].Kind,
			CalcOrder:  s.calcOrder,
			CycleOrder: cycleOrder[name],
			Cycle:      true,
			Direction:  direction,
		}
	}
	logger.Debug("Resolved cycle.", "calc_order", s.calcOrder, "variables", members, "direction", direction.String())
	return nil
}

// rankCycle re-derives the same-period calls among members and strips the
// resulting graph to rank them.
func (s *run) rankCycle(members []string) (map[string]int, error) {
	known := make(model.Names, len(members))
	for _, name := range members {
		known[name] = struct{}{}
	}

	var same []model.Dependency
	for _, name := range members {
		deps, err := dependency.Extract(s.vars[name], known, s.tMax)
		if err != nil {
			return nil, fmt.Errorf("failed to extract dependencies of '%s': %w", name, err)
		}
		same = append(same, dependency.SamePeriod(deps)...)
	}

	cg := builder.CycleGraph(members, same)
	ranks := make(map[string]int, len(members))
	for rank := 1; cg.Len() > 0; rank++ {
		roots := cg.Roots()
		if len(roots) == 0 {
			stuck := cg.Nodes()
			return nil, &UnresolvableCycleError{
				Variables: stuck,
				Cycles:    cg.SimpleCycles(stuck, maxReportedCycles),
			}
		}
		for _, name := range roots {
			ranks[name] = rank
		}
		cg.RemoveNodes(roots...)
	}
	return ranks, nil
}

func (s *run) plan() *Plan {
	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.CalcOrder != b.CalcOrder {
			return a.CalcOrder < b.CalcOrder
		}
		if a.CycleOrder != b.CycleOrder {
			return a.CycleOrder < b.CycleOrder
		}
		return a.Variable < b.Variable
	})

	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Variable] = i
	}
	return &Plan{entries: entries, index: index, deps: s.deps, tMax: s.tMax}
}

func validateNames(vars []*model.Variable) error {
	seen := make(model.Names, len(vars))
	for _, v := range vars {
		if model.IsReserved(v.Name) {
			return fmt.Errorf("variable name %q is reserved", v.Name)
		}
		if seen.Has(v.Name) {
			return fmt.Errorf("duplicate variable %q", v.Name)
		}
		seen[v.Name] = struct{}{}
	}
	return nil
}

func retainVars(vars []*model.Variable, keep model.Names) []*model.Variable {
	var out []*model.Variable
	for _, v := range vars {
		if keep.Has(v.Name) {
			out = append(out, v)
		}
	}
	return out
}
