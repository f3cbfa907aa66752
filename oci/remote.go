package oci

import (
	"strings"

	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
	"oras.land/oras-go/v2/registry/remote/retry"

	"github.com/jmgilman/loadpath/errors"
)

// RemoteOption configures NewRepository.
type RemoteOption func(*remoteOptions)

type remoteOptions struct {
	plainHTTP bool
	username  string
	password  string
}

// WithPlainHTTP talks to the registry over HTTP instead of HTTPS.
func WithPlainHTTP() RemoteOption {
	return func(o *remoteOptions) {
		o.plainHTTP = true
	}
}

// WithBasicAuth uses static credentials instead of the Docker credential
// store.
func WithBasicAuth(username, password string) RemoteOption {
	return func(o *remoteOptions) {
		o.username = username
		o.password = password
	}
}

// NewRepository returns a registry repository for reference, which must
// carry a tag or digest, and that tag or digest.
//
// Credentials come from the Docker credential store unless WithBasicAuth is
// given.
func NewRepository(reference string, opts ...RemoteOption) (*remote.Repository, string, error) {
	o := remoteOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	repoPath, ref := splitReference(reference)
	if ref == "" {
		return nil, "", errors.WithContext(
			errors.New(errors.CodeInvalidInput, "reference must include a tag or digest"), "reference", reference)
	}

	repo, err := remote.NewRepository(repoPath)
	if err != nil {
		return nil, "", errors.WithContext(wrapError(err, "invalid reference"), "reference", reference)
	}
	repo.PlainHTTP = o.plainHTTP

	client := &auth.Client{
		Client: retry.DefaultClient,
		Cache:  auth.NewCache(),
	}
	if o.username != "" {
		client.Credential = auth.StaticCredential(repo.Reference.Registry, auth.Credential{
			Username: o.username,
			Password: o.password,
		})
	} else if store, err := credentials.NewStoreFromDocker(credentials.StoreOptions{}); err == nil {
		client.Credential = credentials.Credential(store)
	}
	repo.Client = client

	return repo, ref, nil
}

// splitReference splits a full reference into the repository path and the
// tag or digest.
//
//	localhost:5000/gems:v1       -> ("localhost:5000/gems", "v1")
//	ghcr.io/org/gems@sha256:abcd -> ("ghcr.io/org/gems", "sha256:abcd")
func splitReference(full string) (repoPath, ref string) {
	lastSlash := strings.LastIndex(full, "/")
	if lastSlash == -1 {
		return full, ""
	}
	head, tail := full[:lastSlash], full[lastSlash+1:]

	if at := strings.LastIndex(tail, "@"); at != -1 {
		return head + "/" + tail[:at], tail[at+1:]
	}
	if colon := strings.LastIndex(tail, ":"); colon != -1 {
		return head + "/" + tail[:colon], tail[colon+1:]
	}
	return full, ""
}
