package scheduler_test

import (
	"testing"

	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/nodeid"
	"github.com/specialistvlad/cashgridgo/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriods(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, scheduler.Periods(2, model.Forward))
	assert.Equal(t, []int{2, 1, 0}, scheduler.Periods(2, model.Backward))
	assert.Equal(t, []int{0}, scheduler.Periods(0, model.Backward))
}

func TestVisitOrder(t *testing.T) {
	vars := defs(t,
		"a", `t`,
		"s", `t == 2 ? a(t) : s(t + 1) + a(t)`,
		"arr", `[for t in range(t_max + 1) : s(t)]`,
	)
	vars[2].Kind = model.KindArray
	plan := schedule(t, 2, vars)

	steps := scheduler.VisitOrder(plan)
	require.Len(t, steps, 3+3+1)
	assert.Equal(t, []nodeid.Address{nodeid.New("a", 0)}, steps[0])
	assert.Equal(t, []nodeid.Address{nodeid.New("s", 2)}, steps[3], "backward cycle starts at the last period")
	assert.Equal(t, []nodeid.Address{nodeid.New("s", 0)}, steps[5])
	assert.Len(t, steps[6], 3, "array variable is produced in one step")
}

func TestVerifyOrder(t *testing.T) {
	t.Run("term life has no violations", func(t *testing.T) {
		plan := schedule(t, 3, termLife(t))
		violations, err := scheduler.VerifyOrder(plan)
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("mixed directions are reported", func(t *testing.T) {
		plan := schedule(t, 3, defs(t,
			"x", `y(t - 1)`,
			"y", `x(t + 1)`,
		))
		assert.Equal(t, model.Forward, entry(t, plan, "x").Direction, "ties resolve forward")

		violations, err := scheduler.VerifyOrder(plan)
		require.NoError(t, err)
		require.Len(t, violations, 3)
		assert.Contains(t, violations, scheduler.Violation{From: nodeid.New("x", 1), To: nodeid.New("y", 0)})
		assert.Contains(t, violations[0].String(), "evaluated later")
	})

	t.Run("unicode names are reported", func(t *testing.T) {
		plan := schedule(t, 2, defs(t,
			"prämie", `t == 0 ? 1 : prämie(t - 1) + prämie(t + 1)`,
		))

		violations, err := scheduler.VerifyOrder(plan)
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, nodeid.New("prämie", 1), violations[0].From)
		assert.Equal(t, nodeid.New("prämie", 0), violations[0].To)
	})
}

func TestFilterOutputs(t *testing.T) {
	vars := defs(t,
		"a", `1`,
		"b", `a(t)`,
		"c", `b(t - 1) + c(t - 1)`,
		"d", `a(t)`,
	)
	plan := schedule(t, 1, vars)
	require.Equal(t, 4, plan.Len())

	g := modelGraph(t, vars)
	retained, err := scheduler.FilterOutputs(g, []string{"c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, retained)

	retained, err = scheduler.FilterOutputs(g, []string{"d", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, retained)
}
