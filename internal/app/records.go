package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/specialistvlad/cashgridgo/internal/config"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/executor"
	"github.com/specialistvlad/cashgridgo/internal/modelpoint"
	"github.com/zclconf/go-cty/cty"
)

// record is one evaluation: a main model point and the matching rows of
// every other set.
type record struct {
	id    string
	group string
	input executor.Input
}

// records loads every model point set and joins them on the main set's ids.
// The selected runplan row is shared by every record.
func (a *App) records(ctx context.Context) ([]record, error) {
	recs, err := a.modelPoints(ctx)
	if err != nil {
		return nil, err
	}
	row, ok, err := a.runplan(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		for i := range recs {
			if recs[i].input == nil {
				recs[i].input = executor.Input{}
			}
			recs[i].input[config.RunplanName] = row
		}
	}
	return recs, nil
}

func (a *App) modelPoints(ctx context.Context) ([]record, error) {
	logger := ctxlog.FromContext(ctx)
	s := a.model.Settings

	sets := make([]*modelpoint.Set, 0, len(a.model.ModelPointSets))
	var main *modelpoint.Set
	for _, def := range a.model.ModelPointSets {
		idColumn := def.IDColumn
		if idColumn == "" {
			idColumn = s.IDColumn
		}
		set, err := modelpoint.Load(def.Name, def.Source, idColumn)
		if err != nil {
			return nil, err
		}
		logger.Debug("Model point set loaded.", "set", def.Name, "records", set.Len())
		if def.Name == config.MainSet {
			main = set
		} else {
			sets = append(sets, set)
		}
	}

	if main == nil {
		if len(sets) > 0 {
			return nil, fmt.Errorf("model point set '%s' is required when other sets are declared", config.MainSet)
		}
		if a.config.ID != "" {
			return nil, fmt.Errorf("cannot select record %q: the model has no model point sets", a.config.ID)
		}
		return []record{{}}, nil
	}

	if a.config.ID != "" {
		only, err := main.Only(a.config.ID)
		if err != nil {
			return nil, err
		}
		main = only
	}

	grouped := s.Aggregate && s.GroupByColumn != ""
	out := make([]record, 0, main.Len())
	for _, r := range main.Records() {
		rec := record{id: r.ID, input: executor.Input{config.MainSet: r.Object()}}
		for _, set := range sets {
			obj := cty.EmptyObjectVal
			if other, ok := set.Lookup(r.ID); ok {
				obj = other.Object()
			}
			rec.input[set.Name] = obj
		}
		if grouped {
			v, ok := r.Value(s.GroupByColumn)
			if !ok {
				return nil, fmt.Errorf("group_by_column '%s' is not a column of model point set '%s'", s.GroupByColumn, config.MainSet)
			}
			rec.group = groupKey(v)
		}
		out = append(out, rec)
	}
	return out, nil
}

func groupKey(v cty.Value) string {
	if v.Type() == cty.Number {
		f, _ := v.AsBigFloat().Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if v.Type() == cty.String {
		return v.AsString()
	}
	return v.GoString()
}
