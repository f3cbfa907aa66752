// Package git reads load-path sources out of Git repositories.
//
// A repository is opened from the host (Open), initialized (Init) or cloned
// into memory from a remote (Clone). Preload then copies the files of one
// revision into a store without checking anything out:
//
//	repo, err := git.Clone(ctx, "https://github.com/org/gems.git", git.WithDepth(1))
//	if err != nil {
//	    return err
//	}
//	n, err := repo.Preload(ctx, store, "v1.2.0", "lib", vfs.LoadPathRoot(store.Style()))
//
// Revisions are anything go-git can resolve: branch and tag names, "HEAD",
// or a full commit hash.
//
// Errors are PlatformErrors. Missing repositories and revisions map to
// CodeNotFound, authentication failures to CodePermissionDenied and
// everything else to CodeIO.
package git
