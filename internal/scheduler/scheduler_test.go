package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/cashgridgo/internal/inspect"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule(t *testing.T, tMax int, vars []*model.Variable) *scheduler.Plan {
	t.Helper()
	plan, err := scheduler.Schedule(testContext(), vars, scheduler.Options{TMaxCalculation: tMax})
	require.NoError(t, err)
	return plan
}

func entry(t *testing.T, p *scheduler.Plan, name string) scheduler.Entry {
	t.Helper()
	e, ok := p.Lookup(name)
	require.True(t, ok, "variable %q not scheduled", name)
	return e
}

func termLife(t *testing.T) []*model.Variable {
	return defs(t,
		"premium", `t == 3 ? benefit(t) : benefit(t) + premium(t + 1) / 1.01`,
		"benefit", `survival(t - 1) * 1000`,
		"survival", `t == 0 ? 0.99 : survival(t - 1) * 0.99`,
	)
}

func TestSchedule_TermLife(t *testing.T) {
	plan := schedule(t, 3, termLife(t))

	survival := entry(t, plan, "survival")
	benefit := entry(t, plan, "benefit")
	premium := entry(t, plan, "premium")

	assert.Equal(t, 1, survival.CalcOrder)
	assert.True(t, survival.Cycle)
	assert.Equal(t, model.Forward, survival.Direction)

	assert.Equal(t, 2, benefit.CalcOrder)
	assert.False(t, benefit.Cycle)
	assert.Equal(t, model.Forward, benefit.Direction)

	assert.Equal(t, 3, premium.CalcOrder)
	assert.True(t, premium.Cycle)
	assert.Equal(t, model.Backward, premium.Direction)

	assert.Equal(t, []string{"survival", "benefit", "premium"}, plan.Names())
	for _, e := range plan.Entries() {
		assert.Equal(t, 1, e.CycleOrder)
	}
}

func TestSchedule_WithoutContextLogger(t *testing.T) {
	plan, err := scheduler.Schedule(context.Background(), termLife(t), scheduler.Options{TMaxCalculation: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Len())
}

func TestSchedule_StrippedTogetherShareOrder(t *testing.T) {
	plan := schedule(t, 5, defs(t,
		"c", `a(t) + b(t)`,
		"a", `1`,
		"b", `2`,
		"d", `c(t) * 2`,
	))

	assert.Equal(t, 1, entry(t, plan, "a").CalcOrder)
	assert.Equal(t, 1, entry(t, plan, "b").CalcOrder)
	assert.Equal(t, 2, entry(t, plan, "c").CalcOrder)
	assert.Equal(t, 3, entry(t, plan, "d").CalcOrder)
	assert.Equal(t, []string{"a", "b", "c", "d"}, plan.Names())

	groups := plan.Groups()
	require.Len(t, groups, 3)
	assert.Len(t, groups[0].Entries, 2)
	assert.False(t, groups[0].Cycle)
}

func TestSchedule_SelfReferenceWithPreviousPeriod(t *testing.T) {
	plan := schedule(t, 10, defs(t, "f", `t == 0 ? 1 : f(t - 1) + 1`))

	f := entry(t, plan, "f")
	assert.True(t, f.Cycle)
	assert.Equal(t, model.Forward, f.Direction)
	assert.Equal(t, 1, f.CalcOrder)
	assert.Equal(t, 1, f.CycleOrder)
}

func TestSchedule_CycleOrder(t *testing.T) {
	// a, b and c form one loop broken by a - 1 step; at a single period the
	// chain is c -> b -> a.
	plan := schedule(t, 4, defs(t,
		"a", `b(t) + 1`,
		"b", `c(t) * 2`,
		"c", `t == 0 ? 0 : a(t - 1)`,
	))

	for _, name := range []string{"a", "b", "c"} {
		e := entry(t, plan, name)
		assert.True(t, e.Cycle)
		assert.Equal(t, 1, e.CalcOrder)
		assert.Equal(t, model.Forward, e.Direction)
	}
	assert.Equal(t, 1, entry(t, plan, "c").CycleOrder)
	assert.Equal(t, 2, entry(t, plan, "b").CycleOrder)
	assert.Equal(t, 3, entry(t, plan, "a").CycleOrder)
	assert.Equal(t, []string{"c", "b", "a"}, plan.Names())
}

func TestSchedule_IndependentCycles(t *testing.T) {
	plan := schedule(t, 6, defs(t,
		"x", `t == 0 ? 1 : z(t - 1)`,
		"y", `x(t) + 1`,
		"z", `y(t) + 1`,
		"a", `t == 0 ? 1 : c(t - 1)`,
		"b", `a(t) + 1`,
		"c", `b(t) + 1`,
		"total", `c(t) + z(t)`,
	))

	assert.Equal(t, 1, entry(t, plan, "a").CalcOrder, "the cycle holding the smallest name goes first")
	assert.Equal(t, 2, entry(t, plan, "x").CalcOrder)
	assert.Equal(t, 2, entry(t, plan, "z").CalcOrder)
	assert.Equal(t, 3, entry(t, plan, "total").CalcOrder)
	assert.Equal(t, []string{"a", "b", "c", "x", "y", "z", "total"}, plan.Names())
}

func TestSchedule_UnresolvableCycle(t *testing.T) {
	t.Run("self reference at same period", func(t *testing.T) {
		_, err := scheduler.Schedule(testContext(), defs(t, "f", `f(t)`), scheduler.Options{TMaxCalculation: 3})
		var unresolvable *scheduler.UnresolvableCycleError
		require.True(t, errors.As(err, &unresolvable), "got %v", err)
		assert.Equal(t, []string{"f"}, unresolvable.Variables)
		assert.Equal(t, [][]string{{"f"}}, unresolvable.Cycles)
	})

	t.Run("mutual same-period loop", func(t *testing.T) {
		_, err := scheduler.Schedule(testContext(), defs(t,
			"a", `b(t) + a(t - 1)`,
			"b", `a(t)`,
			"c", `a(t)`,
		), scheduler.Options{TMaxCalculation: 3})
		var unresolvable *scheduler.UnresolvableCycleError
		require.True(t, errors.As(err, &unresolvable), "got %v", err)
		assert.Equal(t, []string{"a", "b"}, unresolvable.Variables)
		assert.ErrorContains(t, err, "a -> b -> a")
	})
}

func TestSchedule_InvalidCycle(t *testing.T) {
	vars := defs(t,
		"a", `b(t - 1)`,
		"b", `[for t in range(t_max + 1) : a(t)]`,
	)
	vars[1].Kind = model.KindArray

	_, err := scheduler.Schedule(testContext(), vars, scheduler.Options{TMaxCalculation: 3})
	var invalid *scheduler.InvalidCycleError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "b", invalid.Variable)
	assert.Equal(t, []string{"a", "b"}, invalid.Members)
}

func TestSchedule_ArrayOutsideCycle(t *testing.T) {
	vars := defs(t,
		"a", `t * 2`,
		"avg", `[for t in range(t_max + 1) : a(t) / 2]`,
	)
	vars[1].Kind = model.KindArray

	plan := schedule(t, 3, vars)
	avg := entry(t, plan, "avg")
	assert.Equal(t, 2, avg.CalcOrder)
	assert.Equal(t, model.KindArray, avg.Kind)
}

func TestSchedule_MalformedCall(t *testing.T) {
	_, err := scheduler.Schedule(testContext(), defs(t, "a", `1`, "b", `a(t, 2)`), scheduler.Options{TMaxCalculation: 3})
	var malformed *inspect.MalformedCallError
	assert.True(t, errors.As(err, &malformed), "got %v", err)
}

func TestSchedule_InvalidInput(t *testing.T) {
	t.Run("negative maximum period", func(t *testing.T) {
		_, err := scheduler.Schedule(testContext(), defs(t, "a", `1`), scheduler.Options{TMaxCalculation: -1})
		assert.ErrorContains(t, err, "non-negative")
	})

	t.Run("reserved name", func(t *testing.T) {
		_, err := scheduler.Schedule(testContext(), defs(t, "t", `1`), scheduler.Options{})
		assert.ErrorContains(t, err, "reserved")
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := scheduler.Schedule(testContext(), defs(t, "a", `1`, "a", `2`), scheduler.Options{})
		assert.ErrorContains(t, err, "duplicate")
	})
}

func TestSchedule_EmptyModel(t *testing.T) {
	plan := schedule(t, 3, nil)
	assert.Equal(t, 0, plan.Len())
	assert.Empty(t, plan.Groups())
}

func TestSchedule_Idempotent(t *testing.T) {
	vars := termLife(t)
	first := schedule(t, 12, vars)
	second := schedule(t, 12, vars)
	assert.Equal(t, first.Entries(), second.Entries())
}

func TestSchedule_SamePeriodOrderHolds(t *testing.T) {
	vars := defs(t,
		"e", `d(t) + b(t)`,
		"d", `c(t) + a(t + 1)`,
		"c", `b(t) * a(t)`,
		"b", `a(t - 1)`,
		"a", `t`,
	)
	plan := schedule(t, 5, vars)

	for _, d := range plan.Dependencies() {
		if d.Argument != model.ArgT {
			continue
		}
		callee, caller := entry(t, plan, d.Callee), entry(t, plan, d.Caller)
		assert.Less(t, callee.CalcOrder, caller.CalcOrder, "%s", d)
	}
}

func TestSchedule_OutputFilter(t *testing.T) {
	vars := defs(t,
		"A", `1`,
		"B", `A(t) * 2`,
		"C", `B(t) + 1`,
		"D", `A(t) - 1`,
	)

	t.Run("retains predecessor closure", func(t *testing.T) {
		plan, err := scheduler.Schedule(testContext(), vars, scheduler.Options{TMaxCalculation: 3, OutputColumns: []string{"C"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, plan.Names())
		_, ok := plan.Lookup("D")
		assert.False(t, ok)
		for _, d := range plan.Dependencies() {
			assert.NotEqual(t, "D", d.Caller)
		}
	})

	t.Run("unknown output", func(t *testing.T) {
		_, err := scheduler.Schedule(testContext(), vars, scheduler.Options{TMaxCalculation: 3, OutputColumns: []string{"E"}})
		var unknown *scheduler.UnknownVariableError
		require.True(t, errors.As(err, &unknown), "got %v", err)
		assert.Equal(t, "E", unknown.Name)
	})
}
