package app

import (
	"errors"

	"github.com/specialistvlad/cashgridgo/internal/config"
)

// Config holds all the necessary configuration for an App instance.
type Config struct {
	ModelPath    string // .hcl file or directory
	SettingsPath string // optional YAML or TOML settings override

	// Overrides are applied last, on top of the model and settings file.
	Overrides config.Overlay
	// ID restricts a run to one main model point record.
	ID string
	// Version selects the runplan row. Empty means the default version.
	Version string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
