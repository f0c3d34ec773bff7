// Package schema holds the gohcl decoding targets of model files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the top-level structure of a model file. Any file may hold any
// mix of blocks.
type File struct {
	Settings       []*Settings       `hcl:"settings,block"`
	ModelPointSets []*ModelPointSet `hcl:"model_point_set,block"`
	Runplans       []*Runplan        `hcl:"runplan,block"`
	Constants      []*Constant       `hcl:"constant,block"`
	Variables      []*Variable       `hcl:"variable,block"`
}

// Settings is the `settings` block. Omitted attributes stay nil.
type Settings struct {
	TMaxCalculation *int           `hcl:"t_max_calculation,optional"`
	TMaxOutput      *int           `hcl:"t_max_output,optional"`
	OutputColumns   hcl.Expression `hcl:"output_columns,optional"`
	Aggregate       *bool          `hcl:"aggregate,optional"`
	GroupByColumn   *string        `hcl:"group_by_column,optional"`
	IDColumn        *string        `hcl:"id_column,optional"`
	SaveOutput      *bool          `hcl:"save_output,optional"`
	SaveDiagnostic  *bool          `hcl:"save_diagnostic,optional"`
	SaveLog         *bool          `hcl:"save_log,optional"`
	OutputDir       *string        `hcl:"output_dir,optional"`
}

// ModelPointSet is a `model_point_set` block.
type ModelPointSet struct {
	Name     string         `hcl:"name,label"`
	Source   hcl.Expression `hcl:"source"`
	IDColumn string         `hcl:"id_column,optional"`
}

// Runplan is the `runplan` block: a table of run parameters keyed by
// version.
type Runplan struct {
	Source hcl.Expression `hcl:"source"`
}

// Constant is a `constant` block.
type Constant struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

// Variable is a `variable` block.
type Variable struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Array       bool           `hcl:"array,optional"`
	Formula     hcl.Expression `hcl:"formula"`
}
