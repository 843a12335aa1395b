// Package resolver turns user-supplied path inputs into canonical paths to
// existing markdown files
package resolver

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/markwatch/markwatch/pkg/errors"
)

// markdownExtensions is the fixed allow-list of recognized markdown file
// extensions, matched case-insensitively
var markdownExtensions = []string{"md", "markdown", "mdown", "mkd", "mkdn"}

// Resolve converts a path input into a canonical absolute path to an existing
// regular file. Inputs that parse as a file: URI are converted to a filesystem
// path first; everything else is treated as a literal path.
func Resolve(pathInput string) (string, error) {
	if u, err := url.Parse(pathInput); err == nil && u.Scheme == "file" {
		asPath := u.Path
		if asPath == "" {
			return "", errors.NewNotFound(pathInput)
		}
		return CanonicalizeExistingFile(asPath)
	}

	return CanonicalizeExistingFile(pathInput)
}

// CanonicalizeExistingFile resolves symlinks and relative segments and verifies
// the result is an existing regular file. Directories are rejected with the
// same not-found error as missing paths.
func CanonicalizeExistingFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.NewReadError(path, err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(path)
		}
		return "", errors.NewReadError(path, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(path)
		}
		return "", errors.NewReadError(path, err)
	}
	if !info.Mode().IsRegular() {
		return "", errors.NewNotFound(path)
	}

	return canonical, nil
}

// IsMarkdownFile reports whether the path carries a recognized markdown
// extension
func IsMarkdownFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	for _, candidate := range markdownExtensions {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}
