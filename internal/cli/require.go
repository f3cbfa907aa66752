package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmgilman/loadpath/vfs"
)

// RequireResult is the outcome of one require or load argument.
type RequireResult struct {
	Feature string       `json:"feature"`
	Path    string       `json:"path"`
	Outcome string       `json:"outcome"`
	Evals   []EvalRecord `json:"evals"`
}

// NewRequireCommand creates the require command.
func NewRequireCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "require <feature>...",
		Short: "Require features and trace what gets evaluated",
		Long: `Require each feature in order against one store.

A feature without the .rb extension is looked up with it first. Sources are
scanned for require, require_relative and load lines, which are followed,
so the command prints the files a program would evaluate. A feature that is
required twice is reported as already loaded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequire(rootOpts, args, cmd, false)
		},
	}
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>...",
		Short: "Load files unconditionally and trace what gets evaluated",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequire(rootOpts, args, cmd, true)
		},
	}
}

func runRequire(opts *RootOptions, args []string, cmd *cobra.Command, load bool) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()
	store, err := openStore(ctx, opts, formatter.GetErrWriter())
	if err != nil {
		return formatter.Error(ExitCommandError, err)
	}

	var trace io.Writer
	var text strings.Builder
	if formatter.Format != "json" {
		trace = &text
	}

	results := make([]RequireResult, 0, len(args))
	for _, arg := range args {
		interp := newTraceInterpreter(store, trace)

		target := arg
		var outcome vfs.Outcome
		if load {
			outcome, err = store.Load(ctx, interp, target)
		} else {
			target, err = vfs.FindFeature(store, arg)
			if err == nil {
				outcome, err = store.Require(ctx, interp, target)
			}
		}
		if err != nil {
			// Whatever was traced before the failure is still useful.
			if trace != nil {
				_, _ = io.WriteString(formatter.Writer, text.String())
			}
			return formatter.Error(ExitFailure, err)
		}

		if trace != nil && outcome == vfs.AlreadyLoaded {
			fmt.Fprintf(&text, "skip %s (already loaded)\n", target)
		}
		results = append(results, RequireResult{
			Feature: arg,
			Path:    target,
			Outcome: outcome.String(),
			Evals:   interp.Evals,
		})
	}

	formatter.VerboseLog("loaded features: %s", strings.Join(store.LoadedFeatures(), ", "))
	return formatter.Success(results, text.String())
}
