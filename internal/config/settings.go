package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Settings controls a model run.
type Settings struct {
	// TMaxCalculation is the last period evaluated.
	TMaxCalculation int
	// TMaxOutput is the last period written. It never exceeds TMaxCalculation.
	TMaxOutput int
	// OutputColumns restricts the run to these variables and what they need.
	OutputColumns []string
	// Aggregate sums every record into one table instead of writing one
	// block per record.
	Aggregate bool
	// GroupByColumn, in aggregate mode, sums records per distinct value of
	// this main model point column.
	GroupByColumn string
	// IDColumn is the default record identifier column.
	IDColumn string
	// SaveOutput writes the result table to OutputDir.
	SaveOutput bool
	// SaveDiagnostic writes the per-variable runtime table to OutputDir.
	SaveDiagnostic bool
	// SaveLog writes the run's log lines to OutputDir.
	SaveLog bool
	// OutputDir is where result files are written.
	OutputDir string
}

// DefaultSettings returns the settings used where nothing overrides them.
func DefaultSettings() Settings {
	return Settings{
		TMaxCalculation: 720,
		TMaxOutput:      720,
		OutputColumns:   []string{},
		Aggregate:       true,
		IDColumn:        "id",
		SaveOutput:      true,
		SaveDiagnostic:  true,
		SaveLog:         true,
		OutputDir:       "output",
	}
}

// Normalize validates the settings and clamps TMaxOutput to TMaxCalculation,
// logging the adjustment.
func (s *Settings) Normalize(logger *slog.Logger) error {
	if s.TMaxCalculation < 0 {
		return fmt.Errorf("t_max_calculation must be non-negative, got %d", s.TMaxCalculation)
	}
	if s.TMaxOutput < 0 {
		return fmt.Errorf("t_max_output must be non-negative, got %d", s.TMaxOutput)
	}
	if s.TMaxOutput > s.TMaxCalculation {
		logger.Warn("t_max_output exceeds t_max_calculation; t_max_output adjusted to match t_max_calculation.",
			"t_max_output", s.TMaxOutput, "t_max_calculation", s.TMaxCalculation)
		s.TMaxOutput = s.TMaxCalculation
	}
	if s.IDColumn == "" {
		return fmt.Errorf("id_column cannot be empty")
	}
	if s.GroupByColumn != "" && !s.Aggregate {
		logger.Warn("group_by_column is ignored when aggregate is false.", "group_by_column", s.GroupByColumn)
	}
	return nil
}

// Overlay is a partial Settings read from a settings file or flags. Nil
// fields leave the underlying value unchanged.
type Overlay struct {
	TMaxCalculation *int     `yaml:"t_max_calculation" toml:"t_max_calculation"`
	TMaxOutput      *int     `yaml:"t_max_output" toml:"t_max_output"`
	OutputColumns   []string `yaml:"output_columns" toml:"output_columns"`
	Aggregate       *bool    `yaml:"aggregate" toml:"aggregate"`
	GroupByColumn   *string  `yaml:"group_by_column" toml:"group_by_column"`
	IDColumn        *string  `yaml:"id_column" toml:"id_column"`
	SaveOutput      *bool    `yaml:"save_output" toml:"save_output"`
	SaveDiagnostic  *bool    `yaml:"save_diagnostic" toml:"save_diagnostic"`
	SaveLog         *bool    `yaml:"save_log" toml:"save_log"`
	OutputDir       *string  `yaml:"output_dir" toml:"output_dir"`
}

// Apply copies every set field of o onto s.
func (s *Settings) Apply(o *Overlay) {
	if o == nil {
		return
	}
	if o.TMaxCalculation != nil {
		s.TMaxCalculation = *o.TMaxCalculation
	}
	if o.TMaxOutput != nil {
		s.TMaxOutput = *o.TMaxOutput
	}
	if o.OutputColumns != nil {
		s.OutputColumns = append([]string(nil), o.OutputColumns...)
	}
	if o.Aggregate != nil {
		s.Aggregate = *o.Aggregate
	}
	if o.GroupByColumn != nil {
		s.GroupByColumn = *o.GroupByColumn
	}
	if o.IDColumn != nil {
		s.IDColumn = *o.IDColumn
	}
	if o.SaveOutput != nil {
		s.SaveOutput = *o.SaveOutput
	}
	if o.SaveDiagnostic != nil {
		s.SaveDiagnostic = *o.SaveDiagnostic
	}
	if o.SaveLog != nil {
		s.SaveLog = *o.SaveLog
	}
	if o.OutputDir != nil {
		s.OutputDir = *o.OutputDir
	}
}

// LoadOverlay reads a settings file. The format is chosen by extension:
// .yaml and .yml are YAML, .toml is TOML.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	o := &Overlay{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and leaves every field unset.
		if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), o)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown setting %q in %s", undecoded[0].String(), path)
		}
	default:
		return nil, fmt.Errorf("unsupported settings file extension %q (want .yaml, .yml or .toml)", ext)
	}
	return o, nil
}
