package hcl_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cashgridgo/internal/config"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	modelhcl "github.com/specialistvlad/cashgridgo/internal/hcl"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// writeFiles creates the files under a temp dir and returns the dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func load(t *testing.T, files map[string]string) (*config.Model, error) {
	t.Helper()
	return modelhcl.NewLoader().Load(testContext(), writeFiles(t, files))
}

func TestLoad_FullModel(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"model/settings.hcl": `
settings {
  t_max_calculation = 12
  t_max_output      = 6
  output_columns    = ["pv"]
  aggregate         = false
  output_dir        = "out"
  save_log          = false
}

model_point_set "main" {
  source = "data/main.csv"
}

constant "rate" {
  value = 0.05
}
`,
		"model/vars.hcl": `
variable "survival" {
  description = "Probability of surviving to t."
  formula     = t == 0 ? 1 : survival(t - 1) * (1 - rate)
}

variable "avg" {
  array   = true
  formula = [for t in range(t_max + 1) : survival(t) / 2]
}
`,
	})
	m, err := modelhcl.NewLoader().Load(testContext(), root)
	require.NoError(t, err)

	s := m.Settings
	assert.Equal(t, 12, s.TMaxCalculation)
	assert.Equal(t, 6, s.TMaxOutput)
	assert.Equal(t, []string{"pv"}, s.OutputColumns)
	assert.False(t, s.Aggregate)
	assert.Equal(t, "out", s.OutputDir)
	assert.Equal(t, "id", s.IDColumn, "untouched settings keep their defaults")
	assert.True(t, s.SaveDiagnostic)
	assert.False(t, s.SaveLog)

	require.Len(t, m.ModelPointSets, 1)
	main, ok := m.Set(config.MainSet)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "model", "data", "main.csv"), main.Source, "sources resolve against the declaring file")

	require.Len(t, m.Constants, 1)
	require.Equal(t, cty.Number, m.Constants[0].Value.Type())
	rate, _ := m.Constants[0].Value.AsBigFloat().Float64()
	assert.Equal(t, 0.05, rate)

	require.Len(t, m.Variables, 2)
	byName := model.ByName(m.Variables)
	assert.Equal(t, "Probability of surviving to t.", byName["survival"].Description)
	assert.Equal(t, model.KindScalar, byName["survival"].Kind)
	assert.Equal(t, model.KindArray, byName["avg"].Kind)
}

func TestLoad_NoSettingsUsesDefaults(t *testing.T) {
	m, err := load(t, map[string]string{"m.hcl": `variable "x" { formula = 1 }`})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), m.Settings)
}

func TestLoad_Runplan(t *testing.T) {
	root := writeFiles(t, map[string]string{"m.hcl": `
runplan {
  source = "data/runplan.csv"
}
variable "x" { formula = runplan.rate }
`})
	m, err := modelhcl.NewLoader().Load(testContext(), root)
	require.NoError(t, err)
	require.NotNil(t, m.Runplan)
	assert.Equal(t, filepath.Join(root, "data", "runplan.csv"), m.Runplan.Source)

	m, err = load(t, map[string]string{"m.hcl": `variable "x" { formula = 1 }`})
	require.NoError(t, err)
	assert.Nil(t, m.Runplan)
}

func TestLoad_EmptyOutputColumns(t *testing.T) {
	m, err := load(t, map[string]string{"m.hcl": `
settings {
  output_columns = []
}
variable "x" { formula = 1 }
`})
	require.NoError(t, err)
	assert.Empty(t, m.Settings.OutputColumns)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "duplicate variable across files",
			files:   map[string]string{"a.hcl": `variable "x" { formula = 1 }`, "b.hcl": `variable "x" { formula = 2 }`},
			wantErr: `"x" was already declared`,
		},
		{
			name:    "constant clashes with variable",
			files:   map[string]string{"a.hcl": "constant \"x\" { value = 1 }\nvariable \"x\" { formula = 2 }"},
			wantErr: "Duplicate name",
		},
		{
			name:    "reserved variable name",
			files:   map[string]string{"a.hcl": `variable "t_max" { formula = 1 }`},
			wantErr: `"t_max" is reserved`,
		},
		{
			name:    "reserved constant name",
			files:   map[string]string{"a.hcl": `constant "t" { value = 1 }`},
			wantErr: `"t" is reserved`,
		},
		{
			name:    "dashed offset",
			files:   map[string]string{"a.hcl": `variable "x" { formula = t == 0 ? 0 : x(t-1) }`},
			wantErr: `write "t - 1"`,
		},
		{
			name:    "unknown setting",
			files:   map[string]string{"a.hcl": "settings {\n  t_max = 3\n}"},
			wantErr: "Unsupported argument",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": `output "x" {}`},
			wantErr: "failed to decode",
		},
		{
			name:    "duplicate settings",
			files:   map[string]string{"a.hcl": "settings {}\nsettings {}"},
			wantErr: "Duplicate settings block",
		},
		{
			name:    "constant with references",
			files:   map[string]string{"a.hcl": `constant "c" { value = other + 1 }`},
			wantErr: "must not refer to variables or functions",
		},
		{
			name:    "missing formula",
			files:   map[string]string{"a.hcl": `variable "x" { description = "none" }`},
			wantErr: "Missing required argument",
		},
		{
			name:    "missing constant value",
			files:   map[string]string{"a.hcl": "constant \"c\" {\n}"},
			wantErr: `The argument "value" is required in constant "c"`,
		},
		{
			name:    "missing set source",
			files:   map[string]string{"a.hcl": "model_point_set \"main\" {\n  id_column = \"id\"\n}"},
			wantErr: `The argument "source" is required in model_point_set "main"`,
		},
		{
			name:    "duplicate runplan",
			files:   map[string]string{"a.hcl": "runplan {\n  source = \"a.csv\"\n}\nrunplan {\n  source = \"b.csv\"\n}"},
			wantErr: `"runplan" was already declared`,
		},
		{
			name:    "variable named runplan",
			files:   map[string]string{"a.hcl": "runplan {\n  source = \"a.csv\"\n}\nvariable \"runplan\" { formula = 1 }"},
			wantErr: "Duplicate name",
		},
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `variable "x" { formula = ( }`},
			wantErr: "failed to parse",
		},
		{
			name:    "no files",
			files:   map[string]string{"notes.txt": "hello"},
			wantErr: "no .hcl files found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.files)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	_, err := load(t, map[string]string{"a.hcl": `
variable "t" { formula = 1 }
variable "y" { formula = y(t-1) }
`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
	assert.Contains(t, err.Error(), "read as a single name")
	assert.NotContains(t, err.Error(), "other diagnostic(s)")

	var diags hcl.Diagnostics
	require.ErrorAs(t, err, &diags)
	assert.Len(t, diags, 2)
}

func TestLoad_SingleFileAndMissingPath(t *testing.T) {
	root := writeFiles(t, map[string]string{"m.hcl": `variable "x" { formula = 1 }`, "other.hcl": `variable "y" { formula = 2 }`})
	loader := modelhcl.NewLoader()

	m, err := loader.Load(testContext(), filepath.Join(root, "m.hcl"))
	require.NoError(t, err)
	require.Len(t, m.Variables, 1)
	assert.Equal(t, "x", m.Variables[0].Name)

	_, err = loader.Load(testContext(), filepath.Join(root, "missing"))
	assert.ErrorContains(t, err, "error accessing path")

	_, err = loader.Load(testContext(), filepath.Join(root, "notes.txt"))
	assert.Error(t, err)
}
