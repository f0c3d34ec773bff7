package scheduler_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/cashgridgo/internal/builder"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/dag"
	"github.com/specialistvlad/cashgridgo/internal/dependency"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// defs builds variables from alternating name/formula pairs.
func defs(t *testing.T, pairs ...string) []*model.Variable {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	var vars []*model.Variable
	for i := 0; i < len(pairs); i += 2 {
		expr, diags := hclsyntax.ParseExpression([]byte(pairs[i+1]), pairs[i]+".hcl", hcl.Pos{Line: 1, Column: 1})
		require.False(t, diags.HasErrors(), diags.Error())
		vars = append(vars, &model.Variable{Name: pairs[i], Formula: expr})
	}
	return vars
}

func modelGraph(t *testing.T, vars []*model.Variable) *dag.Graph {
	t.Helper()
	deps, err := dependency.ExtractAll(vars, 3)
	require.NoError(t, err)
	return builder.ModelGraph(vars, deps)
}
