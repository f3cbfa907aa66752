package git

import (
	"context"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Repository wraps a go-git repository.
type Repository struct {
	path string
	repo *gogit.Repository
	fs   billy.Filesystem
}

// RemoteOperations performs the network side of Clone. Tests replace it
// through WithRemoteOperations.
type RemoteOperations interface {
	Clone(ctx context.Context, opts *gogit.CloneOptions) (*gogit.Repository, error)
}

// defaultRemoteOps clones into memory storage without a worktree. Preload
// reads the object database directly.
type defaultRemoteOps struct{}

func (defaultRemoteOps) Clone(ctx context.Context, opts *gogit.CloneOptions) (*gogit.Repository, error) {
	return gogit.CloneContext(ctx, memory.NewStorage(), nil, opts)
}

// RepositoryOption configures Init, Open and Clone.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	fs            billy.Filesystem
	customFS      bool
	remoteOps     RemoteOperations
	depth         int
	referenceName plumbing.ReferenceName
	auth          Auth
}

// WithFilesystem sets the filesystem Init and Open work in. It defaults to
// the host filesystem.
func WithFilesystem(fs billy.Filesystem) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.fs = fs
		opts.customFS = true
	}
}

// WithRemoteOperations replaces the network operations used by Clone.
func WithRemoteOperations(ops RemoteOperations) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.remoteOps = ops
	}
}

// WithDepth makes Clone shallow. 0 clones the full history.
func WithDepth(depth int) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.depth = depth
	}
}

// WithReferenceName makes Clone fetch a single branch or tag.
func WithReferenceName(ref plumbing.ReferenceName) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.referenceName = ref
	}
}

func newRepositoryOptions(path string, opts []RepositoryOption) *repositoryOptions {
	options := &repositoryOptions{remoteOps: defaultRemoteOps{}}
	for _, opt := range opts {
		opt(options)
	}
	if !options.customFS {
		options.fs = osfs.New(path)
	}
	return options
}

// scoped returns the filesystem rooted at path. The default host filesystem
// is already rooted there.
func (o *repositoryOptions) scoped(path string) (billy.Filesystem, error) {
	if !o.customFS {
		return o.fs, nil
	}
	if err := o.fs.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return o.fs.Chroot(path)
}

// Init creates a repository with a worktree at path.
//
// Example:
//
//	repo, err := git.Init("/", git.WithFilesystem(memfs.New()))
func Init(path string, opts ...RepositoryOption) (*Repository, error) {
	options := newRepositoryOptions(path, opts)
	scopedFs, err := options.scoped(path)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to path")
	}
	if !options.customFS {
		if err := scopedFs.MkdirAll(".", 0o755); err != nil {
			return nil, wrapError(err, "failed to create repository directory")
		}
	}

	dotGitFs, err := scopedFs.Chroot(".git")
	if err != nil {
		return nil, wrapError(err, "failed to create .git filesystem")
	}
	storage := filesystem.NewStorage(dotGitFs, cache.NewObjectLRUDefault())

	repo, err := gogit.Init(storage, scopedFs)
	if err != nil {
		return nil, wrapError(err, "failed to initialize repository")
	}
	return &Repository{path: path, repo: repo, fs: scopedFs}, nil
}

// Open opens the repository at path. Both repositories with a .git
// directory and bare repositories are accepted.
func Open(path string, opts ...RepositoryOption) (*Repository, error) {
	options := newRepositoryOptions(path, opts)
	scopedFs, err := options.scoped(path)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to path")
	}

	var repo *gogit.Repository
	if info, statErr := scopedFs.Stat(".git"); statErr == nil && info.IsDir() {
		dotGitFs, err := scopedFs.Chroot(".git")
		if err != nil {
			return nil, wrapError(err, "failed to scope filesystem to .git")
		}
		storage := filesystem.NewStorage(dotGitFs, cache.NewObjectLRUDefault())
		repo, err = gogit.Open(storage, scopedFs)
		if err != nil {
			return nil, wrapError(err, "failed to open repository")
		}
	} else {
		storage := filesystem.NewStorage(scopedFs, cache.NewObjectLRUDefault())
		repo, err = gogit.Open(storage, nil)
		if err != nil {
			return nil, wrapError(err, "failed to open repository")
		}
	}

	return &Repository{path: path, repo: repo, fs: scopedFs}, nil
}

// Clone clones the repository at url into memory.
//
// Example:
//
//	repo, err := git.Clone(ctx, "https://github.com/org/gems.git",
//	    git.WithDepth(1),
//	    git.WithReferenceName(plumbing.NewTagReferenceName("v1.2.0")))
func Clone(ctx context.Context, url string, opts ...RepositoryOption) (*Repository, error) {
	options := newRepositoryOptions(".", opts)

	cloneOpts := &gogit.CloneOptions{
		URL:   url,
		Depth: options.depth,
		Auth:  options.auth,
	}
	if options.referenceName != "" {
		cloneOpts.ReferenceName = options.referenceName
		cloneOpts.SingleBranch = true
	}

	repo, err := options.remoteOps.Clone(ctx, cloneOpts)
	if err != nil {
		return nil, wrapError(err, "failed to clone repository")
	}
	return &Repository{path: url, repo: repo}, nil
}

// IsRemote reports whether source names a remote repository rather than a
// host path.
func IsRemote(source string) bool {
	return strings.Contains(source, "://") || strings.HasPrefix(source, "git@")
}

// Path returns the host path or URL the repository was created from.
func (r *Repository) Path() string {
	return r.path
}

// Underlying returns the go-git repository.
func (r *Repository) Underlying() *gogit.Repository {
	return r.repo
}

// Filesystem returns the worktree filesystem, or nil for repositories cloned
// into memory.
func (r *Repository) Filesystem() billy.Filesystem {
	return r.fs
}
