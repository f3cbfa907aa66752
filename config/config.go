// Package config loads the load-path store configuration from CUE or YAML
// files and builds the configured store.
//
// A configuration file selects the store strategy and its inputs:
//
//	strategy: "search_path"
//	search_path: ["/usr/lib/ruby/3.3"]
//	search_path_env: "RUBYLIB"
//	preload: [{source: "./vendor/lib"}]
//
// CUE files are checked against the embedded schema before decoding. YAML
// files are decoded strictly and checked with Validate.
package config

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	cuelang "cuelang.org/go/cue"
	"github.com/jmgilman/loadpath/cue"
	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/billy"
	"github.com/jmgilman/loadpath/fs/core"
	"github.com/jmgilman/loadpath/git"
	"github.com/jmgilman/loadpath/internal/logging"
	"github.com/jmgilman/loadpath/oci"
	"github.com/jmgilman/loadpath/vfs"
)

//go:embed schema.cue
var schemaSource []byte

// Config describes how to build a store.
type Config struct {
	// Strategy is one of memory, native, hybrid or search_path.
	Strategy string `json:"strategy" yaml:"strategy"`

	// Style overrides the host path style ("posix" or "windows").
	Style string `json:"style,omitempty" yaml:"style,omitempty"`

	// Cwd overrides the store's default working directory.
	Cwd string `json:"cwd,omitempty" yaml:"cwd,omitempty"`

	// SearchPath lists roots for the search_path strategy, in probe order.
	SearchPath []string `json:"search_path,omitempty" yaml:"search_path,omitempty"`

	// SearchPathEnv names an environment variable whose roots are appended
	// to SearchPath.
	SearchPathEnv string `json:"search_path_env,omitempty" yaml:"search_path_env,omitempty"`

	// Preload copies host directories into the store when it is built.
	Preload []Preload `json:"preload,omitempty" yaml:"preload,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Preload copies files into the store beneath Target. Exactly one of Source,
// Git and OCI is set.
type Preload struct {
	// Source is a host directory.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Git is a repository path or URL. Remote repositories are cloned into
	// memory.
	Git string `json:"git,omitempty" yaml:"git,omitempty"`

	// OCI is a bundle reference such as "ghcr.io/org/gems:v1".
	OCI string `json:"oci,omitempty" yaml:"oci,omitempty"`

	// Ref is the Git revision to copy. It defaults to HEAD.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// Subdir limits a Git preload to one directory of the tree.
	Subdir string `json:"subdir,omitempty" yaml:"subdir,omitempty"`

	// Target is the destination directory in the store. It defaults to the
	// reserved load-path root.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// TokenEnv names an environment variable holding an access token for a
	// remote Git preload over HTTPS.
	TokenEnv string `json:"token_env,omitempty" yaml:"token_env,omitempty"`

	// SSHKey is a private key file for a remote Git preload over SSH.
	SSHKey string `json:"ssh_key,omitempty" yaml:"ssh_key,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Strategy: vfs.StrategyHybrid.String(),
		LogLevel: logging.LogLevelInfo.String(),
	}
}

// Load reads the configuration file at path from the host filesystem.
func Load(ctx context.Context, path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WithPath(errors.Wrap(err, errors.CodeInvalidConfig, "invalid configuration path"), path)
	}
	return LoadFS(ctx, billy.NewLocal(), filepath.ToSlash(abs))
}

// LoadFS reads the configuration file at name from filesystem. The format is
// chosen by extension: .cue, .yaml or .yml.
func LoadFS(ctx context.Context, filesystem core.ReadFS, name string) (*Config, error) {
	switch path.Ext(name) {
	case ".cue":
		return loadCUE(ctx, filesystem, name)
	case ".yaml", ".yml":
		return loadYAML(filesystem, name)
	default:
		return nil, errors.WithPath(
			errors.New(errors.CodeInvalidConfig, "unsupported configuration format"), name)
	}
}

func loadCUE(ctx context.Context, filesystem core.ReadFS, name string) (*Config, error) {
	loader := cue.NewLoader(filesystem)

	schema, err := schemaValue(ctx, loader)
	if err != nil {
		return nil, err
	}

	value, err := loader.LoadFile(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := cue.Validate(ctx, schema, value); err != nil {
		return nil, errors.WithPath(err, name)
	}

	cfg := &Config{}
	if err := cue.Decode(ctx, schema.Unify(value), cfg); err != nil {
		return nil, errors.WithPath(err, name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithPath(err, name)
	}
	return cfg, nil
}

func loadYAML(filesystem core.ReadFS, name string) (*Config, error) {
	data, err := filesystem.ReadFile(name)
	if err != nil {
		return nil, errors.WithPath(errors.Wrap(err, errors.CodeInvalidConfig, "failed to read configuration"), name)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.WithPath(errors.Wrap(err, errors.CodeInvalidConfig, "failed to parse YAML configuration"), name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithPath(err, name)
	}
	return cfg, nil
}

func schemaValue(ctx context.Context, loader *cue.Loader) (cuelang.Value, error) {
	file, err := loader.LoadBytes(ctx, schemaSource, "schema.cue")
	if err != nil {
		return cuelang.Value{}, errors.Wrap(err, errors.CodeInternal, "embedded configuration schema is invalid")
	}
	return file.LookupPath(cuelang.ParsePath("#Config")), nil
}

// Validate checks the fields the schema cannot: that names parse and that the
// search_path strategy has roots to probe.
func (c *Config) Validate() error {
	strategy, err := vfs.ParseStrategy(c.Strategy)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid strategy")
	}
	if _, err := vfs.ParseStyle(c.Style); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid style")
	}
	if _, err := logging.ParseLogLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "invalid log level")
	}
	if strategy == vfs.StrategySearchPath && len(c.SearchPath) == 0 && c.SearchPathEnv == "" {
		return errors.New(errors.CodeInvalidConfig, "search_path strategy needs search_path or search_path_env")
	}
	for i, p := range c.Preload {
		if p.kinds() != 1 {
			return errors.WithContext(
				errors.New(errors.CodeInvalidConfig, "preload entry needs exactly one of source, git and oci"), "index", i)
		}
		if p.Git == "" && (p.Ref != "" || p.Subdir != "" || p.TokenEnv != "" || p.SSHKey != "") {
			return errors.WithContext(
				errors.New(errors.CodeInvalidConfig, "ref, subdir and credentials only apply to git preloads"), "index", i)
		}
		if p.TokenEnv != "" && p.SSHKey != "" {
			return errors.WithContext(
				errors.New(errors.CodeInvalidConfig, "token_env and ssh_key are mutually exclusive"), "index", i)
		}
	}
	return nil
}

// Logger returns a logger at the configured level writing to out.
func (c *Config) Logger(out io.Writer) *logging.Logger {
	level, err := logging.ParseLogLevel(c.LogLevel)
	if err != nil {
		level = logging.LogLevelInfo
	}
	return logging.NewLogger(logging.LogConfig{Level: level, Output: out})
}

// Options translates the configuration into store options.
func (c *Config) Options() ([]vfs.Option, error) {
	style, err := vfs.ParseStyle(c.Style)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid style")
	}
	opts := []vfs.Option{vfs.WithStyle(style)}
	if c.Cwd != "" {
		opts = append(opts, vfs.WithCwd(c.Cwd))
	}

	roots := append([]string(nil), c.SearchPath...)
	if c.SearchPathEnv != "" {
		envRoots, err := vfs.SearchPathFromEnv(c.SearchPathEnv)
		if err != nil {
			return nil, err
		}
		roots = append(roots, envRoots...)
	}
	if len(roots) > 0 {
		opts = append(opts, vfs.WithSearchPath(roots...))
	}
	return opts, nil
}

// Build validates the configuration, constructs the store and applies the
// preloads. Options in extra are applied after the configured ones.
func (c *Config) Build(ctx context.Context, logger *logging.Logger, extra ...vfs.Option) (vfs.Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	strategy, err := vfs.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, vfs.WithLogger(logger))
	opts = append(opts, extra...)

	store, err := vfs.New(strategy, opts...)
	if err != nil {
		return nil, err
	}

	for _, p := range c.Preload {
		target := p.Target
		if target == "" {
			target = vfs.LoadPathRoot(store.Style())
		}

		start := time.Now()
		n, err := preload(ctx, store, p, target)
		logging.LogOperation(ctx, logger, logging.OpPreload, target, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		logger.Debug(ctx, "preloaded sources", "source", p.origin(), "target", target, "files", n)
	}
	return store, nil
}

func preload(ctx context.Context, store vfs.Store, p Preload, target string) (int, error) {
	if p.Source != "" {
		n, err := vfs.PreloadFS(store, os.DirFS(p.Source), ".", target)
		return n, errors.WithContext(err, "source", p.Source)
	}
	if p.OCI != "" {
		repo, ref, err := oci.NewRepository(p.OCI)
		if err != nil {
			return 0, err
		}
		return oci.Preload(ctx, repo, ref, store, target)
	}

	var repo *git.Repository
	var err error
	if git.IsRemote(p.Git) {
		opts := []git.RepositoryOption{}
		if p.Ref == "" {
			opts = append(opts, git.WithDepth(1))
		}
		auth, authErr := p.gitAuth()
		if authErr != nil {
			return 0, errors.WithContext(authErr, "git", p.Git)
		}
		if auth != nil {
			opts = append(opts, git.WithAuth(auth))
		}
		repo, err = git.Clone(ctx, p.Git, opts...)
	} else {
		repo, err = git.Open(p.Git)
	}
	if err != nil {
		return 0, errors.WithContext(err, "git", p.Git)
	}
	n, err := repo.Preload(ctx, store, p.Ref, p.Subdir, target)
	return n, errors.WithContext(err, "git", p.Git)
}

// gitAuth returns the credentials for a remote Git preload, or nil when none
// are configured.
func (p Preload) gitAuth() (git.Auth, error) {
	switch {
	case p.TokenEnv != "":
		token, ok := os.LookupEnv(p.TokenEnv)
		if !ok || token == "" {
			return nil, errors.WithContext(
				errors.New(errors.CodeInvalidConfig, "token environment variable is not set"), "token_env", p.TokenEnv)
		}
		return git.BasicAuth("x-access-token", token), nil
	case p.SSHKey != "":
		return git.SSHKeyFile("git", p.SSHKey, os.Getenv("LOADPATH_SSH_PASSPHRASE"))
	default:
		return nil, nil
	}
}

func (p Preload) kinds() int {
	n := 0
	for _, s := range []string{p.Source, p.Git, p.OCI} {
		if s != "" {
			n++
		}
	}
	return n
}

func (p Preload) origin() string {
	switch {
	case p.Git != "":
		return p.Git
	case p.OCI != "":
		return p.OCI
	default:
		return p.Source
	}
}

// EncodeYAML renders the configuration as YAML.
func (c *Config) EncodeYAML(ctx context.Context) ([]byte, error) {
	loader := cue.NewLoader(billy.NewMemory())
	value := loader.Context().Encode(c)
	return cue.EncodeYAML(ctx, value)
}
