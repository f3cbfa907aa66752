package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// StatResult describes one path in a store.
type StatResult struct {
	Path      string `json:"path"`
	Resolved  string `json:"resolved"`
	Exists    bool   `json:"exists"`
	Directory bool   `json:"directory"`
	Required  bool   `json:"required"`
}

// NewStatCommand creates the stat command.
func NewStatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Report whether a path exists in the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(rootOpts, args[0], cmd)
		},
	}
}

func runStat(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	store, err := openStore(cmd.Context(), opts, formatter.GetErrWriter())
	if err != nil {
		return formatter.Error(ExitCommandError, err)
	}

	resolved, err := store.Resolve(path)
	if err != nil {
		return formatter.Error(ExitFailure, err)
	}
	result := StatResult{
		Path:      path,
		Resolved:  resolved,
		Exists:    store.Exists(path),
		Directory: store.IsDirectory(path),
		Required:  store.IsRequired(path),
	}

	kind := "missing"
	switch {
	case result.Directory:
		kind = "directory"
	case result.Exists:
		kind = "file"
	}
	return formatter.Success(result, fmt.Sprintf("%s\t%s (%s store)\n", resolved, kind, store.Strategy()))
}
