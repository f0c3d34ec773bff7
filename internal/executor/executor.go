package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cashgridgo/internal/config"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/inmemorystore"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/node"
	"github.com/specialistvlad/cashgridgo/internal/nodeid"
	"github.com/specialistvlad/cashgridgo/internal/nodestore"
	"github.com/specialistvlad/cashgridgo/internal/scheduler"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Input holds the current record of every model point set, keyed by set
// name. Formulas read it as `set.column`.
type Input map[string]cty.Value

// Result is the evaluated series of every scheduled variable for one record.
type Result struct {
	// Series maps a variable name to its values for t = 0..T_MAX.
	Series map[string][]float64
	// Runtime is the wall time spent on each variable.
	Runtime map[string]time.Duration
}

// Executor evaluates a plan. It holds no per-record state and may be
// reused for any number of records.
type Executor struct {
	plan      *scheduler.Plan
	vars      map[string]*model.Variable
	constants map[string]cty.Value
	tMax      int
}

// New creates an executor for the plan. vars must hold every scheduled
// variable; unscheduled ones are ignored.
func New(plan *scheduler.Plan, vars []*model.Variable, constants []*config.Constant) (*Executor, error) {
	byName := model.ByName(vars)
	scheduled := make(map[string]*model.Variable, plan.Len())
	for _, name := range plan.Names() {
		v, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("scheduled variable '%s' has no definition", name)
		}
		scheduled[name] = v
	}

	consts := make(map[string]cty.Value, len(constants))
	for _, c := range constants {
		consts[c.Name] = c.Value
	}
	return &Executor{plan: plan, vars: scheduled, constants: consts, tMax: plan.TMax()}, nil
}

// evaluation is the state of one Run call.
type evaluation struct {
	ctx     context.Context
	exec    *Executor
	store   nodestore.Store
	root    *hcl.EvalContext
	periods []*hcl.EvalContext
}

// Run evaluates every scheduled variable for one record.
func (e *Executor) Run(ctx context.Context, input Input) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	ev := &evaluation{
		ctx:     ctx,
		exec:    e,
		store:   inmemorystore.New(),
		periods: make([]*hcl.EvalContext, e.tMax+1),
	}
	ev.root = ev.rootContext(input)

	runtime := make(map[string]time.Duration, len(e.vars))
	timed := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		runtime[name] += time.Since(start)
		return err
	}

	for _, g := range e.plan.Groups() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug("Evaluating group.", "calc_order", g.CalcOrder, "cycle", g.Cycle, "direction", g.Direction.String(), "size", len(g.Entries))

		if g.Cycle {
			for _, t := range scheduler.Periods(e.tMax, g.Direction) {
				for _, entry := range g.Entries {
					if err := timed(entry.Variable, func() error { _, err := ev.cell(entry.Variable, t); return err }); err != nil {
						return nil, err
					}
				}
			}
			continue
		}

		for _, entry := range g.Entries {
			err := timed(entry.Variable, func() error {
				if entry.Kind == model.KindArray {
					return ev.array(entry.Variable)
				}
				for t := 0; t <= e.tMax; t++ {
					if _, err := ev.cell(entry.Variable, t); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	series, err := ev.collect()
	if err != nil {
		return nil, err
	}
	return &Result{Series: series, Runtime: runtime}, nil
}

// cell returns the value of a variable at period t, evaluating it on first
// use.
func (ev *evaluation) cell(name string, t int) (float64, error) {
	addr := nodeid.New(name, t)
	status, err := ev.store.GetStatus(ev.ctx, addr)
	if err != nil {
		return 0, err
	}
	switch status {
	case node.StatusCompleted:
		v, _, err := ev.store.GetValue(ev.ctx, addr)
		return v, err
	case node.StatusRunning:
		return 0, &CircularEvaluationError{Cell: addr}
	}

	v := ev.exec.vars[name]
	if v.Kind == model.KindArray {
		if err := ev.array(name); err != nil {
			return 0, err
		}
		f, _, err := ev.store.GetValue(ev.ctx, addr)
		return f, err
	}

	if err := ev.store.SetStatus(ev.ctx, addr, node.StatusRunning); err != nil {
		return 0, err
	}
	val, diags := v.Formula.Value(ev.periodContext(t))
	var f float64
	if !diags.HasErrors() {
		f, err = toFloat(val)
	} else {
		err = diags
	}
	if err != nil {
		return 0, ev.fail(&EvaluationError{Cell: addr, Err: err}, addr)
	}

	if err := ev.store.SetValue(ev.ctx, addr, f); err != nil {
		return 0, err
	}
	return f, ev.store.SetStatus(ev.ctx, addr, node.StatusCompleted)
}

// array evaluates an array variable's formula once and stores the resulting
// series.
func (ev *evaluation) array(name string) error {
	first := nodeid.New(name, 0)
	status, err := ev.store.GetStatus(ev.ctx, first)
	if err != nil {
		return err
	}
	switch status {
	case node.StatusCompleted:
		return nil
	case node.StatusRunning:
		return &CircularEvaluationError{Cell: first}
	}

	cells := make([]nodeid.Address, ev.exec.tMax+1)
	for t := range cells {
		cells[t] = nodeid.New(name, t)
		if err := ev.store.SetStatus(ev.ctx, cells[t], node.StatusRunning); err != nil {
			return err
		}
	}

	val, diags := ev.exec.vars[name].Formula.Value(ev.root)
	var values []float64
	if diags.HasErrors() {
		err = diags
	} else {
		values, err = toSeries(val, ev.exec.tMax+1)
	}
	if err != nil {
		return ev.fail(&EvaluationError{Cell: first, Err: err}, cells...)
	}

	for t, addr := range cells {
		if err := ev.store.SetValue(ev.ctx, addr, values[t]); err != nil {
			return err
		}
		if err := ev.store.SetStatus(ev.ctx, addr, node.StatusCompleted); err != nil {
			return err
		}
	}
	return nil
}

// fail records err against the cells and returns them to Pending. HCL
// conditionals evaluate both branches and drop the errors of the branch not
// taken, so a failed cell may still be valid when reached another way.
func (ev *evaluation) fail(err error, cells ...nodeid.Address) error {
	for _, addr := range cells {
		_ = ev.store.SetError(ev.ctx, addr, err)
		_ = ev.store.SetStatus(ev.ctx, addr, node.StatusPending)
	}
	return err
}

func (ev *evaluation) collect() (map[string][]float64, error) {
	series := make(map[string][]float64, len(ev.exec.vars))
	for name := range ev.exec.vars {
		values := make([]float64, ev.exec.tMax+1)
		for t := range values {
			v, ok, err := ev.store.GetValue(ev.ctx, nodeid.New(name, t))
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("%s was never evaluated", nodeid.New(name, t))
			}
			values[t] = v
		}
		series[name] = values
	}
	return series, nil
}

func toFloat(v cty.Value) (float64, error) {
	if v.IsNull() {
		return 0, fmt.Errorf("formula returned null")
	}
	if !v.IsWhollyKnown() {
		return 0, fmt.Errorf("formula returned an unknown value")
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("formula must return a number: %w", err)
	}
	f, _ := n.AsBigFloat().Float64()
	return f, nil
}

func toSeries(v cty.Value, n int) ([]float64, error) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return nil, fmt.Errorf("array formula must return a known list")
	}
	if !v.Type().IsListType() && !v.Type().IsTupleType() {
		return nil, fmt.Errorf("array formula must return a list, got %s", v.Type().FriendlyName())
	}
	if got := v.LengthInt(); got != n {
		return nil, fmt.Errorf("array formula returned %d values, want %d", got, n)
	}

	out := make([]float64, 0, n)
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		f, err := toFloat(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
