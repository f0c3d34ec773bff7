package dependency_test

import (
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/cashgridgo/internal/dependency"
	"github.com/specialistvlad/cashgridgo/internal/inspect"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variable(t *testing.T, name, formula string) *model.Variable {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(formula), name+".hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), diags.Error())
	return &model.Variable{Name: name, Formula: expr}
}

func TestExtract(t *testing.T) {
	t.Run("keeps self reference", func(t *testing.T) {
		v := variable(t, "survival", `t == 0 ? 1 : survival(t - 1) * 0.99`)
		deps, err := dependency.Extract(v, model.Names{"survival": {}}, 3)
		require.NoError(t, err)
		require.Len(t, deps, 1)
		assert.Equal(t, "survival", deps[0].Caller)
		assert.Equal(t, "survival", deps[0].Callee)
		assert.Equal(t, model.ArgPrev, deps[0].Argument)
	})

	t.Run("collapses duplicate calls", func(t *testing.T) {
		v := variable(t, "c", `a(t) + a(t) * 2 + a(t - 1)`)
		deps, err := dependency.Extract(v, model.Names{"a": {}, "c": {}}, 3)
		require.NoError(t, err)
		require.Len(t, deps, 2)
		assert.Equal(t, model.ArgT, deps[0].Argument)
		assert.Equal(t, model.ArgPrev, deps[1].Argument)
	})

	t.Run("same callee under different guards is kept twice", func(t *testing.T) {
		v := variable(t, "c", `t == 0 ? a(t) : a(t) + 1`)
		deps, err := dependency.Extract(v, model.Names{"a": {}, "c": {}}, 3)
		require.NoError(t, err)
		assert.Len(t, deps, 1, "both calls see the same positive test")

		v = variable(t, "c", `t == 0 ? a(t) : 0 + (t > 1 ? a(t) : 0)`)
		deps, err = dependency.Extract(v, model.Names{"a": {}, "c": {}}, 3)
		require.NoError(t, err)
		assert.Len(t, deps, 2)
	})

	t.Run("malformed call", func(t *testing.T) {
		v := variable(t, "c", `a(t, 1)`)
		_, err := dependency.Extract(v, model.Names{"a": {}, "c": {}}, 3)
		var malformed *inspect.MalformedCallError
		assert.True(t, errors.As(err, &malformed))
	})
}

func TestExtractAll(t *testing.T) {
	vars := []*model.Variable{
		variable(t, "a", `1`),
		variable(t, "b", `a(t) + b(t - 1)`),
		variable(t, "c", `b(t + 1) + d(t)`),
	}
	deps, err := dependency.ExtractAll(vars, 5)
	require.NoError(t, err)
	require.Len(t, deps, 3, "d is not a model variable")

	t.Run("same period", func(t *testing.T) {
		same := dependency.SamePeriod(deps)
		require.Len(t, same, 1)
		assert.Equal(t, "a", same[0].Callee)
	})

	t.Run("within", func(t *testing.T) {
		in := dependency.Within(deps, model.Names{"b": {}, "c": {}})
		require.Len(t, in, 2)
		for _, d := range in {
			assert.Equal(t, "b", d.Callee)
		}
	})

	t.Run("error names the variable", func(t *testing.T) {
		_, err := dependency.ExtractAll([]*model.Variable{variable(t, "a", `a()`)}, 5)
		assert.ErrorContains(t, err, "'a'")
	})
}
