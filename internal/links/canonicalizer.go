package links

import (
	"path/filepath"

	"github.com/markwatch/markwatch/pkg/errors"
)

// LocalCanonicalizer resolves paths against the local filesystem, following
// symlinks and collapsing relative segments. Nonexistent paths fail, which is
// what keeps the containment check in the authorizer sound.
type LocalCanonicalizer struct{}

// NewLocalCanonicalizer creates a filesystem-backed canonicalizer
func NewLocalCanonicalizer() *LocalCanonicalizer {
	return &LocalCanonicalizer{}
}

// Canonicalize returns the absolute path with all symlinks resolved
func (c *LocalCanonicalizer) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.NewResolveError(path, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.NewResolveError(path, err)
	}
	return canonical, nil
}
