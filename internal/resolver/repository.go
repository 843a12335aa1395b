package resolver

import (
	"os"

	"github.com/markwatch/markwatch/pkg/errors"
)

// LocalRepository reads markdown documents from the local filesystem
type LocalRepository struct{}

// NewLocalRepository creates a new local filesystem repository
func NewLocalRepository() *LocalRepository {
	return &LocalRepository{}
}

// Read resolves the path input and returns the canonical path and file content.
// Files without a markdown extension are rejected.
func (r *LocalRepository) Read(pathInput string) (string, string, error) {
	canonical, err := Resolve(pathInput)
	if err != nil {
		return "", "", err
	}
	if !IsMarkdownFile(canonical) {
		return "", "", errors.NewNotMarkdown(canonical)
	}

	content, err := os.ReadFile(canonical)
	if err != nil {
		return "", "", errors.NewReadError(canonical, err)
	}

	return canonical, string(content), nil
}
