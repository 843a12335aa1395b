// Package links implements scoped opening of files referenced from a rendered
// document: a link target may only be opened when it lives inside the source
// document's directory tree.
package links

import (
	"path/filepath"
	"strings"

	"github.com/markwatch/markwatch/internal/core/interfaces"
	"github.com/markwatch/markwatch/pkg/errors"
	"github.com/markwatch/markwatch/pkg/logger"
	"go.uber.org/zap"
)

// Authorizer validates a linked-file reference against the directory of the
// document that referenced it before delegating to the opener
type Authorizer struct {
	canonicalizer interfaces.PathCanonicalizer
	opener        interfaces.LinkedFileOpener
	logger        *zap.Logger
}

// NewAuthorizer creates an authorizer over the given collaborators
func NewAuthorizer(canonicalizer interfaces.PathCanonicalizer, opener interfaces.LinkedFileOpener) *Authorizer {
	return &Authorizer{
		canonicalizer: canonicalizer,
		opener:        opener,
		logger:        logger.Get(),
	}
}

// Open canonicalizes both the source document's directory and the link target,
// rejects targets outside the source tree, and otherwise hands the canonical
// target to the opener. Both canonicalizations happen before the containment
// check; the opener is never invoked for a rejected path.
func (a *Authorizer) Open(linkedPathInput, sourceDocumentPathInput string) error {
	if sourceDocumentPathInput == "" {
		return errors.NewSourceDocumentError(sourceDocumentPathInput)
	}
	sourceDir := filepath.Dir(sourceDocumentPathInput)
	if sourceDir == sourceDocumentPathInput {
		return errors.NewSourceDocumentError(sourceDocumentPathInput)
	}

	canonicalSourceDir, err := a.canonicalizer.Canonicalize(sourceDir)
	if err != nil {
		return err
	}
	canonicalTarget, err := a.canonicalizer.Canonicalize(linkedPathInput)
	if err != nil {
		return err
	}

	if !containsPath(canonicalSourceDir, canonicalTarget) {
		a.logger.Warn("Rejected linked file outside allowed directory",
			zap.String("target", canonicalTarget),
			zap.String("allowed_dir", canonicalSourceDir),
		)
		return errors.NewScopeError(canonicalTarget, canonicalSourceDir)
	}

	return a.opener.OpenDetached(canonicalTarget)
}

// containsPath reports whether target lives inside dir, comparing whole path
// segments rather than raw string prefixes
func containsPath(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
