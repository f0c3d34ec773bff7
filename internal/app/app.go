package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/cashgridgo/internal/config"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/scheduler"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	// logs keeps every line the logger wrote, for the saved log file.
	logs   *bytes.Buffer
	config *Config
	model  *config.Model
	now    func() time.Time
}

// NewApp loads the model and resolves its settings. Command output goes to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logs := &bytes.Buffer{}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW, logs).With("run_id", uuid.NewString())
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	m, err := loader.Load(ctx, cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	logger.Debug("Model loaded and translated into unified model.")

	if cfg.SettingsPath != "" {
		o, err := config.LoadOverlay(cfg.SettingsPath)
		if err != nil {
			return nil, err
		}
		m.Settings.Apply(o)
		logger.Debug("Settings file applied.", "path", cfg.SettingsPath)
	}
	m.Settings.Apply(&cfg.Overrides)
	if err := m.Settings.Normalize(logger); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	logger.Debug("Settings resolved.", "settings", m.Settings)

	return &App{
		outW:   outW,
		logger: logger,
		logs:   logs,
		config: cfg,
		model:  m,
		now:    time.Now,
	}, nil
}

// Model returns the loaded model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

func (a *App) schedule(ctx context.Context) (*scheduler.Plan, error) {
	s := a.model.Settings
	plan, err := scheduler.Schedule(ctx, a.model.Variables, scheduler.Options{
		TMaxCalculation: s.TMaxCalculation,
		OutputColumns:   s.OutputColumns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule model: %w", err)
	}
	return plan, nil
}
