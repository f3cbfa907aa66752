package cli

import (
	"github.com/spf13/cobra"
)

// NewCatCommand creates the cat command.
func NewCatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print the source text stored at a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(rootOpts, args[0], cmd)
		},
	}
}

func runCat(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	store, err := openStore(cmd.Context(), opts, formatter.GetErrWriter())
	if err != nil {
		return formatter.Error(ExitCommandError, err)
	}

	data, err := store.Read(path)
	if err != nil {
		return formatter.Error(ExitFailure, err)
	}
	return formatter.Success(map[string]string{"path": path, "source": string(data)}, string(data))
}
