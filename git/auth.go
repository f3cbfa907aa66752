package git

import (
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/jmgilman/loadpath/errors"
)

// Auth authenticates Clone against a remote. A nil Auth clones anonymously.
type Auth = transport.AuthMethod

// BasicAuth returns HTTP basic authentication, which is how hosting services
// accept access tokens over HTTPS.
//
//	auth := git.BasicAuth("x-access-token", os.Getenv("GEMS_TOKEN"))
func BasicAuth(username, password string) Auth {
	return &http.BasicAuth{Username: username, Password: password}
}

// SSHKeyAuth returns SSH public key authentication from PEM-encoded key
// bytes. password decrypts an encrypted key and is ignored otherwise.
func SSHKeyAuth(user string, pemBytes []byte, password string) (Auth, error) {
	keys, err := ssh.NewPublicKeys(user, pemBytes, password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to parse SSH key")
	}
	return keys, nil
}

// SSHKeyFile reads a PEM-encoded private key from keyPath and returns SSH
// public key authentication for it.
func SSHKeyFile(user, keyPath, password string) (Auth, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, errors.WithPath(errors.Wrap(err, errors.CodeIO, "failed to read SSH key"), keyPath)
	}
	return SSHKeyAuth(user, pemBytes, password)
}

// WithAuth sets the credentials Clone presents to the remote.
func WithAuth(auth Auth) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.auth = auth
	}
}
