package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration the other commands would use, after defaults
and flag overrides are applied. Text output is YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(rootOpts, cmd)
		},
	}
}

func runConfig(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	cfg, err := loadConfig(cmd.Context(), opts)
	if err != nil {
		return formatter.Error(ExitCommandError, err)
	}

	out, err := cfg.EncodeYAML(cmd.Context())
	if err != nil {
		return formatter.Error(ExitFailure, err)
	}
	return formatter.Success(cfg, string(out))
}
