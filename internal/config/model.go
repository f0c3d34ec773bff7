package config

import (
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a cash-flow model.
type Model struct {
	Settings       Settings
	Variables      []*model.Variable
	Constants      []*Constant
	ModelPointSets []*ModelPointSet
	// Runplan is nil when the model declares none.
	Runplan *Runplan
}

// Constant is a named value shared by every record and period.
type Constant struct {
	Name  string
	Value cty.Value
}

// ModelPointSet describes a table of input records.
type ModelPointSet struct {
	Name string
	// Source is the path of the CSV file, resolved against the directory
	// of the file that declared the set.
	Source string
	// IDColumn overrides Settings.IDColumn for this set when non-empty.
	IDColumn string
}

// Runplan describes the table of run parameters. Formulas read the row of
// the selected version as `runplan.<column>`.
type Runplan struct {
	// Source is the path of the CSV file, resolved like ModelPointSet.Source.
	Source string
}

const (
	// RunplanName is the identifier formulas use for the selected row.
	RunplanName = "runplan"
	// RunplanVersionColumn identifies the rows of a runplan.
	RunplanVersionColumn = "version"
	// DefaultRunplanVersion is selected when no version is requested.
	DefaultRunplanVersion = "1"
)

// MainSet is the name of the model point set that drives a run.
const MainSet = "main"

// Set returns the model point set with the given name.
func (m *Model) Set(name string) (*ModelPointSet, bool) {
	for _, s := range m.ModelPointSets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
