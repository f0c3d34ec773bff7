package cli

import (
	"fmt"

	"github.com/specialistvlad/cashgridgo/internal/app"
	"github.com/spf13/cobra"
)

func newRunCommand(opts *globalOptions) *cobra.Command {
	var (
		settingsPath  string
		outputDir     string
		id            string
		version       string
		outputColumns []string
	)

	cmd := &cobra.Command{
		Use:   "run [MODEL_PATH]",
		Short: "Evaluate the model for every model point and write the results",
		Args:  modelPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(args, func(cfg *app.Config) {
				cfg.SettingsPath = settingsPath
				cfg.ID = id
				cfg.Version = version
				if cmd.Flags().Changed("output-dir") {
					cfg.Overrides.OutputDir = &outputDir
				}
				if cmd.Flags().Changed("output-columns") {
					cfg.Overrides.OutputColumns = outputColumns
				}
			})
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "YAML or TOML file overriding the model's settings.")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory the output and diagnostic files are written to.")
	cmd.Flags().StringVar(&id, "id", "", "Evaluate only the main model point with this id.")
	cmd.Flags().StringVar(&version, "version", "", "Runplan version to evaluate. Defaults to \"1\".")
	cmd.Flags().StringSliceVar(&outputColumns, "output-columns", nil, "Variables to write, comma separated. Defaults to every variable.")
	return cmd
}

func newPlanCommand(opts *globalOptions) *cobra.Command {
	var (
		format string
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "plan [MODEL_PATH]",
		Short: "Print the calculation order of the model",
		Args:  modelPathArg,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case app.FormatText, app.FormatJSON, app.FormatYAML:
				return nil
			}
			return &ExitError{Code: 2, Message: fmt.Sprintf("invalid format %q: must be 'text', 'json' or 'yaml'", format)}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(args, nil)
			if err != nil {
				return err
			}
			return a.Plan(cmd.Context(), format, verify)
		},
	}

	cmd.Flags().StringVar(&format, "format", app.FormatText, "Output format. Options: 'text', 'json' or 'yaml'.")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check the order against every period-level dependency.")
	return cmd
}

func newGraphCommand(opts *globalOptions) *cobra.Command {
	var periods bool

	cmd := &cobra.Command{
		Use:   "graph [MODEL_PATH]",
		Short: "Print the dependency graph of the model in Graphviz DOT format",
		Args:  modelPathArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(args, nil)
			if err != nil {
				return err
			}
			return a.Graph(cmd.Context(), periods)
		},
	}

	cmd.Flags().BoolVar(&periods, "periods", false, "Expand every variable into one node per period.")
	return cmd
}
