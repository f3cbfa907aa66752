// Package cli implements the loadpath command line tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Config   string
	Strategy string
	Style    string
	Cwd      string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the loadpath CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "loadpath",
		Short: "Inspect and exercise a load-path store",
		Long: `loadpath builds a load-path store from a configuration file and runs
require, load and path resolution against it.

Stores are memory, native, hybrid or search_path. Without --config the
hybrid store is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "configuration file (.cue, .yaml)")
	cmd.PersistentFlags().StringVar(&opts.Strategy, "strategy", "", "override the configured store strategy")
	cmd.PersistentFlags().StringVar(&opts.Style, "style", "", "path style (posix|windows), defaults to the host")
	cmd.PersistentFlags().StringVar(&opts.Cwd, "cwd", "", "working directory paths are resolved against")

	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewStatCommand(opts))
	cmd.AddCommand(NewCatCommand(opts))
	cmd.AddCommand(NewRequireCommand(opts))
	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
