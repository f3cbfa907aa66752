package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmgilman/loadpath/vfs"
)

// ResolvedPath pairs an argument with its resolved form.
type ResolvedPath struct {
	Input    string `json:"input"`
	Resolved string `json:"resolved"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve paths against the working directory",
		Long: `Resolve paths lexically against --cwd without touching any filesystem.

"." components are dropped and ".." never climbs above the root. Output
always uses forward slashes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args, cmd)
		},
	}
}

func runResolve(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	style, err := vfs.ParseStyle(opts.Style)
	if err != nil {
		return formatter.Error(ExitCommandError, err)
	}
	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return formatter.Error(ExitCommandError, err)
		}
		cwd = filepath.ToSlash(wd)
	}

	resolver := vfs.NewResolver(style, cwd)
	results := make([]ResolvedPath, 0, len(args))
	var text strings.Builder
	for _, arg := range args {
		resolved, err := resolver.Resolve(arg)
		if err != nil {
			return formatter.Error(ExitFailure, err)
		}
		results = append(results, ResolvedPath{Input: arg, Resolved: resolved})
		text.WriteString(resolved)
		text.WriteByte('\n')
	}
	return formatter.Success(results, text.String())
}
