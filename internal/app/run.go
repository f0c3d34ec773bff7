package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/executor"
	"github.com/specialistvlad/cashgridgo/internal/output"
	"github.com/specialistvlad/cashgridgo/internal/scheduler"
)

// maxLoggedViolations bounds the order violations logged individually.
const maxLoggedViolations = 10

// Run schedules the model, evaluates every model point record and writes
// the output and diagnostic files.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	s := a.model.Settings

	plan, err := a.schedule(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Calculation order resolved.", "variables", plan.Len(), "groups", len(plan.Groups()))
	a.warnViolations(plan)

	exec, err := executor.New(plan, a.model.Variables, a.model.Constants)
	if err != nil {
		return err
	}
	records, err := a.records(ctx)
	if err != nil {
		return err
	}

	results, err := output.NewResults(output.Options{
		TMax:      s.TMaxOutput,
		Columns:   outputColumns(plan, s.OutputColumns),
		Aggregate: s.Aggregate,
		GroupBy:   s.GroupByColumn,
		IDColumn:  s.IDColumn,
	})
	if err != nil {
		return err
	}

	a.logger.Info("Starting evaluation.", "records", len(records))
	runtime := make(map[string]time.Duration, plan.Len())
	for _, rec := range records {
		a.logger.Debug("Evaluating model point.", "id", rec.id)
		res, err := exec.Run(ctx, rec.input)
		if err != nil {
			if rec.id != "" {
				return fmt.Errorf("model point '%s': %w", rec.id, err)
			}
			return err
		}
		for name, d := range res.Runtime {
			runtime[name] += d
		}
		if err := results.Add(rec.id, rec.group, res.Series); err != nil {
			return err
		}
	}
	a.logger.Info("Evaluation finished.", "records", len(records))

	ts := a.now()
	if s.SaveOutput {
		path := output.FileName(s.OutputDir, ts, "output")
		if err := output.WriteFile(path, results.Table()); err != nil {
			return err
		}
		a.logger.Info("Output written.", "path", path)
	}
	if s.SaveDiagnostic {
		path := output.FileName(s.OutputDir, ts, "diagnostic")
		if err := output.WriteFile(path, output.Diagnostic(plan, runtime)); err != nil {
			return err
		}
		a.logger.Info("Diagnostic written.", "path", path)
	}

	if s.SaveLog {
		path := filepath.Join(s.OutputDir, ts.Format(output.TimestampLayout)+"_log.txt")
		a.logger.Info("Saving log file.", "path", path)
		if err := a.saveLog(path); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// saveLog writes every log line of the run so far to path.
func (a *App) saveLog(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := os.WriteFile(path, a.logs.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

// outputColumns returns the plan's variables in order, restricted to
// requested when it is non-empty.
func outputColumns(plan *scheduler.Plan, requested []string) []string {
	names := plan.Names()
	if len(requested) == 0 {
		return names
	}
	return slices.DeleteFunc(names, func(n string) bool { return !slices.Contains(requested, n) })
}

func (a *App) warnViolations(plan *scheduler.Plan) {
	violations, err := scheduler.VerifyOrder(plan)
	if err != nil {
		a.logger.Warn("Calculation order could not be verified.", "error", err)
		return
	}
	if len(violations) == 0 {
		return
	}
	for i, v := range violations {
		if i == maxLoggedViolations {
			break
		}
		a.logger.Warn("Cell is visited before one of its inputs; it will be evaluated on demand.", "cell", v.To.String(), "input", v.From.String())
	}
	a.logger.Warn("Calculation order has violations.", "count", len(violations))
}
