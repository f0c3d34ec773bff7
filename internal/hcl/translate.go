package hcl

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/cashgridgo/internal/config"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/schema"
)

// dashedOffset matches names like t-1, which HCL reads as one identifier
// rather than a subtraction.
var dashedOffset = regexp.MustCompile(`^t-[0-9]+$`)

type modelBuilder struct {
	ctx      context.Context
	model    *config.Model
	settings *hcl.Range
	declared map[string]hcl.Range
	diags    hcl.Diagnostics
}

func newModelBuilder(ctx context.Context) *modelBuilder {
	return &modelBuilder{
		ctx:      ctx,
		model:    &config.Model{Settings: config.DefaultSettings()},
		declared: make(map[string]hcl.Range),
	}
}

// add translates the blocks of one file. dir resolves relative sources.
func (b *modelBuilder) add(dir string, f *schema.File) {
	for _, s := range f.Settings {
		// Omitted expressions still carry a position inside the block.
		var rng hcl.Range
		if s.OutputColumns != nil {
			rng = s.OutputColumns.Range()
		}
		if b.settings != nil {
			b.diags = append(b.diags, errorDiag("Duplicate settings block",
				fmt.Sprintf("Settings were already declared at %s.", b.settings), rng))
			continue
		}
		b.settings = &rng
		b.applySettings(s)
	}
	for _, s := range f.ModelPointSets {
		if !b.declare(s.Name, "model point set", s.Source.Range()) {
			continue
		}
		src, ok := b.source(dir, s.Source, fmt.Sprintf("model_point_set %q", s.Name))
		if !ok {
			continue
		}
		b.model.ModelPointSets = append(b.model.ModelPointSets, &config.ModelPointSet{
			Name:     s.Name,
			Source:   src,
			IDColumn: s.IDColumn,
		})
	}
	for _, r := range f.Runplans {
		if !b.declare(config.RunplanName, "runplan", r.Source.Range()) {
			continue
		}
		if src, ok := b.source(dir, r.Source, "runplan"); ok {
			b.model.Runplan = &config.Runplan{Source: src}
		}
	}
	for _, c := range f.Constants {
		if !b.declare(c.Name, "constant", c.Value.Range()) {
			continue
		}
		if !b.require(c.Value, "value", fmt.Sprintf("constant %q", c.Name)) {
			continue
		}
		v, diags := c.Value.Value(nil)
		if diags.HasErrors() {
			b.diags = append(b.diags, errorDiag("Invalid constant value",
				fmt.Sprintf("The value of constant %q must not refer to variables or functions.", c.Name), c.Value.Range()))
			continue
		}
		if !v.IsWhollyKnown() || v.IsNull() {
			b.diags = append(b.diags, errorDiag("Invalid constant value",
				fmt.Sprintf("Constant %q must have a known, non-null value.", c.Name), c.Value.Range()))
			continue
		}
		b.model.Constants = append(b.model.Constants, &config.Constant{Name: c.Name, Value: v})
	}
	for _, v := range f.Variables {
		if !b.declare(v.Name, "variable", v.Formula.Range()) {
			continue
		}
		if !b.checkFormula(v) {
			continue
		}
		kind := model.KindScalar
		if v.Array {
			kind = model.KindArray
		}
		b.model.Variables = append(b.model.Variables, &model.Variable{
			Name:        v.Name,
			Description: v.Description,
			Kind:        kind,
			Formula:     v.Formula,
			DeclRange:   v.Formula.Range(),
		})
	}
}

// declare registers a name shared by variables, constants and sets.
func (b *modelBuilder) declare(name, what string, rng hcl.Range) bool {
	if model.IsReserved(name) {
		b.diags = append(b.diags, errorDiag("Reserved name",
			fmt.Sprintf("%q is reserved and cannot name a %s.", name, what), rng))
		return false
	}
	if !hclsyntax.ValidIdentifier(name) {
		b.diags = append(b.diags, errorDiag("Invalid name",
			fmt.Sprintf("%q is not a valid identifier.", name), rng))
		return false
	}
	if prev, ok := b.declared[name]; ok {
		b.diags = append(b.diags, errorDiag("Duplicate name",
			fmt.Sprintf("%q was already declared at %s.", name, prev), rng))
		return false
	}
	b.declared[name] = rng
	return true
}

// source decodes a CSV path and resolves it against dir.
func (b *modelBuilder) source(dir string, expr hcl.Expression, block string) (string, bool) {
	if !b.require(expr, "source", block) {
		return "", false
	}
	var src string
	if diags := gohcl.DecodeExpression(expr, nil, &src); diags.HasErrors() {
		b.diags = append(b.diags, diags...)
		return "", false
	}
	if !filepath.IsAbs(src) {
		src = filepath.Join(dir, src)
	}
	return src, true
}

func (b *modelBuilder) require(expr hcl.Expression, attrName, block string) bool {
	if d := requireExpr(b.ctx, expr, attrName, block); d != nil {
		b.diags = append(b.diags, d)
		return false
	}
	return true
}

func (b *modelBuilder) checkFormula(v *schema.Variable) bool {
	if !b.require(v.Formula, "formula", fmt.Sprintf("variable %q", v.Name)) {
		return false
	}
	if _, ok := v.Formula.(hclsyntax.Expression); !ok {
		b.diags = append(b.diags, errorDiag("Unsupported formula",
			fmt.Sprintf("The formula of %q must use native HCL syntax.", v.Name), v.Formula.Range()))
		return false
	}
	ok := true
	for _, tr := range v.Formula.Variables() {
		if name := tr.RootName(); dashedOffset.MatchString(name) {
			b.diags = append(b.diags, errorDiag("Ambiguous period offset",
				fmt.Sprintf("%q is read as a single name; write \"t - %s\" to refer to an earlier period.", name, name[2:]),
				tr.SourceRange()))
			ok = false
		}
	}
	return ok
}

func (b *modelBuilder) applySettings(s *schema.Settings) {
	o := &config.Overlay{
		TMaxCalculation: s.TMaxCalculation,
		TMaxOutput:      s.TMaxOutput,
		Aggregate:       s.Aggregate,
		GroupByColumn:   s.GroupByColumn,
		IDColumn:        s.IDColumn,
		SaveOutput:      s.SaveOutput,
		SaveDiagnostic:  s.SaveDiagnostic,
		SaveLog:         s.SaveLog,
		OutputDir:       s.OutputDir,
	}
	if isExprDefined(b.ctx, s.OutputColumns, "output_columns") {
		cols := []string{}
		if diags := gohcl.DecodeExpression(s.OutputColumns, nil, &cols); diags.HasErrors() {
			b.diags = append(b.diags, diags...)
		}
		o.OutputColumns = cols
	}
	b.model.Settings.Apply(o)
}

// build returns the merged model once every file has been added.
func (b *modelBuilder) build() (*config.Model, hcl.Diagnostics) {
	return b.model, b.diags
}
