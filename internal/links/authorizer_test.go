package links

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/markwatch/markwatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing
type MockCanonicalizer struct {
	mock.Mock
}

func (m *MockCanonicalizer) Canonicalize(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) OpenDetached(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func TestOpenAllowsTargetInsideSourceTree(t *testing.T) {
	canonicalizer := new(MockCanonicalizer)
	opener := new(MockOpener)

	canonicalizer.On("Canonicalize", "/ws/docs").Return("/canonical/ws/docs", nil)
	canonicalizer.On("Canonicalize", "/ws/docs/assets/img.svg").Return("/canonical/ws/docs/assets/img.svg", nil)
	opener.On("OpenDetached", "/canonical/ws/docs/assets/img.svg").Return(nil)

	authorizer := NewAuthorizer(canonicalizer, opener)
	err := authorizer.Open("/ws/docs/assets/img.svg", "/ws/docs/main.md")

	require.NoError(t, err)
	opener.AssertCalled(t, "OpenDetached", "/canonical/ws/docs/assets/img.svg")
}

func TestOpenRejectsTargetOutsideSourceTree(t *testing.T) {
	canonicalizer := new(MockCanonicalizer)
	opener := new(MockOpener)

	canonicalizer.On("Canonicalize", "/ws/docs").Return("/canonical/ws/docs", nil)
	canonicalizer.On("Canonicalize", "/ws/outside/img.svg").Return("/canonical/ws/outside/img.svg", nil)

	authorizer := NewAuthorizer(canonicalizer, opener)
	err := authorizer.Open("/ws/outside/img.svg", "/ws/docs/main.md")

	require.Error(t, err)
	assert.True(t, errors.IsScopeError(err))

	me := err.(*errors.MarkwatchError)
	assert.Equal(t, "/canonical/ws/outside/img.svg", me.Path)
	assert.Equal(t, "/canonical/ws/docs", me.AllowedDir)

	opener.AssertNotCalled(t, "OpenDetached", mock.Anything)
}

func TestOpenRejectsSimilarlyPrefixedSibling(t *testing.T) {
	canonicalizer := new(MockCanonicalizer)
	opener := new(MockOpener)

	// "/ws/docs-old" string-prefix matches "/ws/docs" but is a different tree
	canonicalizer.On("Canonicalize", "/ws/docs").Return("/ws/docs", nil)
	canonicalizer.On("Canonicalize", "/ws/docs-old/img.svg").Return("/ws/docs-old/img.svg", nil)

	authorizer := NewAuthorizer(canonicalizer, opener)
	err := authorizer.Open("/ws/docs-old/img.svg", "/ws/docs/main.md")

	require.Error(t, err)
	assert.True(t, errors.IsScopeError(err))
	opener.AssertNotCalled(t, "OpenDetached", mock.Anything)
}

func TestOpenFailsOnSourceDirectoryCanonicalizationError(t *testing.T) {
	canonicalizer := new(MockCanonicalizer)
	opener := new(MockOpener)

	resolveErr := errors.NewResolveError("/ws/docs", fmt.Errorf("permission denied"))
	canonicalizer.On("Canonicalize", "/ws/docs").Return("", resolveErr)

	authorizer := NewAuthorizer(canonicalizer, opener)
	err := authorizer.Open("/ws/docs/assets/img.svg", "/ws/docs/main.md")

	require.Error(t, err)
	assert.True(t, errors.IsResolveError(err))

	// The target canonicalizer and opener must not run after the source fails
	canonicalizer.AssertNumberOfCalls(t, "Canonicalize", 1)
	opener.AssertNotCalled(t, "OpenDetached", mock.Anything)
}

func TestOpenFailsOnTargetCanonicalizationError(t *testing.T) {
	canonicalizer := new(MockCanonicalizer)
	opener := new(MockOpener)

	canonicalizer.On("Canonicalize", "/ws/docs").Return("/canonical/ws/docs", nil)
	resolveErr := errors.NewResolveError("/ws/docs/gone.svg", fmt.Errorf("no such file"))
	canonicalizer.On("Canonicalize", "/ws/docs/gone.svg").Return("", resolveErr)

	authorizer := NewAuthorizer(canonicalizer, opener)
	err := authorizer.Open("/ws/docs/gone.svg", "/ws/docs/main.md")

	require.Error(t, err)
	assert.True(t, errors.IsResolveError(err))
	opener.AssertNotCalled(t, "OpenDetached", mock.Anything)
}

func TestOpenPropagatesOpenerError(t *testing.T) {
	canonicalizer := new(MockCanonicalizer)
	opener := new(MockOpener)

	canonicalizer.On("Canonicalize", "/ws/docs").Return("/canonical/ws/docs", nil)
	canonicalizer.On("Canonicalize", "/ws/docs/img.svg").Return("/canonical/ws/docs/img.svg", nil)
	openErr := errors.NewOpenError("/canonical/ws/docs/img.svg", fmt.Errorf("launcher unavailable"))
	opener.On("OpenDetached", "/canonical/ws/docs/img.svg").Return(openErr)

	authorizer := NewAuthorizer(canonicalizer, opener)
	err := authorizer.Open("/ws/docs/img.svg", "/ws/docs/main.md")

	require.Error(t, err)
	assert.True(t, errors.IsOpenError(err))
}

func TestOpenRejectsSourceDocumentWithoutParent(t *testing.T) {
	authorizer := NewAuthorizer(new(MockCanonicalizer), new(MockOpener))

	for _, source := range []string{"", "/"} {
		err := authorizer.Open("/ws/docs/img.svg", source)
		require.Error(t, err, "source %q", source)
		assert.True(t, errors.IsSourceDocumentError(err), "source %q", source)
	}
}

func TestOpenRejectsTraversalOnRealFilesystem(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	outside := filepath.Join(root, "outside")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "assets"), 0755))
	require.NoError(t, os.MkdirAll(outside, 0755))

	source := filepath.Join(docs, "main.md")
	inside := filepath.Join(docs, "assets", "img.svg")
	secret := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(source, []byte("# Main"), 0644))
	require.NoError(t, os.WriteFile(inside, []byte("<svg/>"), 0644))
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0644))

	opener := new(MockOpener)
	opener.On("OpenDetached", mock.Anything).Return(nil)
	authorizer := NewAuthorizer(NewLocalCanonicalizer(), opener)

	// Traversal out of the docs tree is rejected and never reaches the opener
	err := authorizer.Open(filepath.Join(docs, "..", "outside", "secret.txt"), source)
	require.Error(t, err)
	assert.True(t, errors.IsScopeError(err))
	opener.AssertNotCalled(t, "OpenDetached", mock.Anything)

	// A target inside the tree is allowed
	require.NoError(t, authorizer.Open(inside, source))
	opener.AssertNumberOfCalls(t, "OpenDetached", 1)
}

func TestContainsPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name     string
		dir      string
		target   string
		expected bool
	}{
		{"direct child", sep + "ws" + sep + "docs", sep + "ws" + sep + "docs" + sep + "a.md", true},
		{"nested child", sep + "ws" + sep + "docs", sep + "ws" + sep + "docs" + sep + "x" + sep + "a.md", true},
		{"directory itself", sep + "ws" + sep + "docs", sep + "ws" + sep + "docs", true},
		{"parent", sep + "ws" + sep + "docs", sep + "ws", false},
		{"sibling", sep + "ws" + sep + "docs", sep + "ws" + sep + "other", false},
		{"prefix sibling", sep + "ws" + sep + "docs", sep + "ws" + sep + "docs-old" + sep + "a.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsPath(tt.dir, tt.target))
		})
	}
}
