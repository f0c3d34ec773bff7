package app

import (
	"context"

	"github.com/specialistvlad/cashgridgo/internal/builder"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/dag"
	"github.com/specialistvlad/cashgridgo/internal/dependency"
)

// Graph writes the dependency graph of the model in Graphviz DOT format.
// Edges point from callee to caller. With periods, every node is one
// variable at one period.
func (a *App) Graph(ctx context.Context, periods bool) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)
	vars := a.model.Variables
	tMax := a.model.Settings.TMaxCalculation

	deps, err := dependency.ExtractAll(vars, tMax)
	if err != nil {
		return err
	}

	var g *dag.Graph
	name := "model"
	if periods {
		g, err = builder.PeriodGraph(vars, deps, tMax)
		if err != nil {
			return err
		}
		name = "periods"
		if err := g.DetectCycles(); err != nil {
			logger.Warn("Period graph has a cycle; the model cannot be evaluated.", "error", err)
		}
	} else {
		g = builder.ModelGraph(vars, deps)
	}
	logger.Debug("Graph built.", "nodes", g.Len(), "edges", g.EdgeCount())
	return g.WriteDOT(a.outW, name)
}
