package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/cashgridgo/internal/config"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/modelpoint"
	"github.com/zclconf/go-cty/cty"
)

// runplan returns the runplan row of the requested version, or false when
// the model has no runplan.
func (a *App) runplan(ctx context.Context) (cty.Value, bool, error) {
	rp := a.model.Runplan
	if rp == nil {
		if a.config.Version != "" {
			return cty.NilVal, false, fmt.Errorf("cannot select runplan version %q: the model has no runplan", a.config.Version)
		}
		return cty.NilVal, false, nil
	}

	version := a.config.Version
	if version == "" {
		version = config.DefaultRunplanVersion
	}
	set, err := modelpoint.Load(config.RunplanName, rp.Source, config.RunplanVersionColumn)
	if err != nil {
		return cty.NilVal, false, fmt.Errorf("failed to load runplan: %w", err)
	}
	row, ok := set.Lookup(version)
	if !ok {
		return cty.NilVal, false, fmt.Errorf("there is no version '%s' in the runplan", version)
	}
	ctxlog.FromContext(ctx).Info("Runplan version selected.", "version", version)
	return row.Object(), true, nil
}
