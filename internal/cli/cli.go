package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/cashgridgo/internal/app"
	"github.com/specialistvlad/cashgridgo/internal/hcl"
	"github.com/spf13/cobra"
)

// defaultModelPath is used when no MODEL_PATH argument is given.
const defaultModelPath = "."

// globalOptions are the flags shared by every command.
type globalOptions struct {
	logLevel  string
	logFormat string
	outW      io.Writer
	errW      io.Writer
}

// Execute runs the command line. Usage problems are returned as an
// ExitError with code 2; asking for help is not an error.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError(err)
	}
	return err
}

// NewRootCommand builds the command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &globalOptions{outW: outW, errW: errW}

	root := &cobra.Command{
		Use:   "cashgridgo",
		Short: "Resolve the calculation order of cash-flow models and evaluate them",
		Long: `cashgridgo reads a cash-flow model written in HCL, works out an order in which
its variables can be calculated period by period, and evaluates it for every
model point record.

MODEL_PATH is a single .hcl file or a directory containing .hcl files. It
defaults to the current directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "json", "Log output format. Options: 'text', 'json' or 'auto'.")

	root.AddCommand(newRunCommand(opts), newPlanCommand(opts), newGraphCommand(opts))
	return root
}

func (o *globalOptions) validate() error {
	o.logFormat = strings.ToLower(o.logFormat)
	switch o.logFormat {
	case "text", "json", "auto":
	default:
		return &ExitError{Code: 2, Message: "invalid log-format: must be 'text', 'json' or 'auto'"}
	}

	o.logLevel = strings.ToLower(o.logLevel)
	switch o.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return nil
}

// newApp builds the app for the MODEL_PATH argument.
func (o *globalOptions) newApp(args []string, mutate func(*app.Config)) (*app.App, error) {
	path := defaultModelPath
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := app.NewConfig(app.Config{
		ModelPath: path,
		LogFormat: o.logFormat,
		LogLevel:  o.logLevel,
	})
	if err != nil {
		return nil, usageError(err)
	}
	if mutate != nil {
		mutate(cfg)
	}
	return app.NewApp(o.outW, o.errW, cfg, hcl.NewLoader())
}

// modelPathArg accepts at most one positional argument.
func modelPathArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return usageError(fmt.Errorf("%s: %w", cmd.CommandPath(), err))
	}
	return nil
}
