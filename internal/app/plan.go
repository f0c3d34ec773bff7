package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/cashgridgo/internal/builder"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/scheduler"
	"gopkg.in/yaml.v3"
)

// Plan output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// planDocument is the serialised form of a plan.
type planDocument struct {
	TMax    int               `json:"t_max" yaml:"t_max"`
	Entries []scheduler.Entry `json:"entries" yaml:"entries"`
}

// Plan writes the calculation order in the given format. With verify, the
// order is checked against the expanded period graph and any violation is
// an error.
func (a *App) Plan(ctx context.Context, format string, verify bool) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	plan, err := a.schedule(ctx)
	if err != nil {
		return err
	}

	if err := writePlan(a.outW, plan, format); err != nil {
		return err
	}
	if !verify {
		return nil
	}

	g, err := builder.PeriodGraph(a.model.Variables, plan.Dependencies(), plan.TMax())
	if err != nil {
		return err
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("model cannot be evaluated: %w", err)
	}
	violations, err := scheduler.VerifyOrder(plan)
	if err != nil {
		return err
	}
	for _, v := range violations {
		a.logger.Warn("Order violation.", "violation", v.String())
	}
	if len(violations) > 0 {
		return fmt.Errorf("calculation order has %d violations", len(violations))
	}
	a.logger.Info("Calculation order verified.", "variables", plan.Len())
	return nil
}

func writePlan(w io.Writer, plan *scheduler.Plan, format string) error {
	doc := planDocument{TMax: plan.TMax(), Entries: plan.Entries()}
	switch format {
	case FormatText, "":
		return renderPlan(w, plan)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported plan format %q", format)
}
