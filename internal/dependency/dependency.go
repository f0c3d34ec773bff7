// Package dependency turns the inspector's per-call findings into
// normalised dependency records.
package dependency

import (
	"fmt"

	"github.com/specialistvlad/cashgridgo/internal/inspect"
	"github.com/specialistvlad/cashgridgo/internal/model"
)

// Extract returns the dependencies of v on the variables in known. Calls
// that repeat an already recorded callee, argument kind and period subset
// collapse into one record. Self-references are kept.
func Extract(v *model.Variable, known model.Names, tMax int) ([]model.Dependency, error) {
	findings, err := inspect.Inspect(v.Name, v.Formula, known, tMax)
	if err != nil {
		return nil, err
	}

	var deps []model.Dependency
	for _, f := range findings {
		d := model.Dependency{
			Caller:   v.Name,
			Callee:   f.Callee,
			Argument: f.Argument,
			Periods:  f.Periods,
		}
		if !contains(deps, d) {
			deps = append(deps, d)
		}
	}
	return deps, nil
}

// ExtractAll runs Extract over every variable, using their names as the
// known set.
func ExtractAll(vars []*model.Variable, tMax int) ([]model.Dependency, error) {
	known := model.NamesOf(vars)
	var all []model.Dependency
	for _, v := range vars {
		deps, err := Extract(v, known, tMax)
		if err != nil {
			return nil, fmt.Errorf("failed to extract dependencies of '%s': %w", v.Name, err)
		}
		all = append(all, deps...)
	}
	return all, nil
}

// SamePeriod keeps only the dependencies whose argument is t.
func SamePeriod(deps []model.Dependency) []model.Dependency {
	return Filter(deps, func(d model.Dependency) bool { return d.Argument == model.ArgT })
}

// Within keeps only the dependencies whose caller and callee are both in names.
func Within(deps []model.Dependency, names model.Names) []model.Dependency {
	return Filter(deps, func(d model.Dependency) bool { return names.Has(d.Caller) && names.Has(d.Callee) })
}

// Filter returns the dependencies satisfying keep, preserving order.
func Filter(deps []model.Dependency, keep func(model.Dependency) bool) []model.Dependency {
	var out []model.Dependency
	for _, d := range deps {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func contains(deps []model.Dependency, d model.Dependency) bool {
	for _, e := range deps {
		if e.Callee == d.Callee && e.Argument == d.Argument && e.Periods.Equal(d.Periods) {
			return true
		}
	}
	return false
}
