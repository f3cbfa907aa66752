package cli

import (
	"context"
	"io"

	"github.com/jmgilman/loadpath/config"
	"github.com/jmgilman/loadpath/internal/logging"
	"github.com/jmgilman/loadpath/vfs"
)

// loadConfig reads --config, or starts from the defaults, and applies the
// flag overrides.
func loadConfig(ctx context.Context, opts *RootOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(ctx, opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Strategy != "" {
		cfg.Strategy = opts.Strategy
	}
	if opts.Style != "" {
		cfg.Style = opts.Style
	}
	if opts.Cwd != "" {
		cfg.Cwd = opts.Cwd
	}
	if opts.Verbose {
		cfg.LogLevel = logging.LogLevelDebug.String()
	}
	return cfg, cfg.Validate()
}

// openStore builds the configured store. Store logs go to logOut.
func openStore(ctx context.Context, opts *RootOptions, logOut io.Writer) (vfs.Store, error) {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg.Build(ctx, cfg.Logger(logOut))
}
