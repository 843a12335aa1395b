package watchers

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestAffectsWatchedFileCaseSensitive(t *testing.T) {
	watched := "/tmp/Guide.md"

	assert.True(t, affectsWatchedFile("/tmp/Guide.md", watched, false))
	assert.False(t, affectsWatchedFile("/tmp/guide.md", watched, false))
	assert.False(t, affectsWatchedFile("/tmp/other.md", watched, false))
	assert.False(t, affectsWatchedFile("/var/Guide.md", watched, false))
}

func TestAffectsWatchedFileCaseFolded(t *testing.T) {
	watched := "/Docs/Guide.md"

	assert.True(t, affectsWatchedFile("/docs/guide.md", watched, true))
	assert.True(t, affectsWatchedFile("/DOCS/GUIDE.MD", watched, true))
	assert.False(t, affectsWatchedFile("/docs/other.md", watched, true))
}

func TestAffectsWatchedFileFoldsNonASCIINames(t *testing.T) {
	watched := "/Docs/Café.md"

	assert.True(t, affectsWatchedFile("/docs/CAFÉ.md", watched, true))
	assert.False(t, affectsWatchedFile("/docs/CAFÉ.md", watched, false))
}

func TestIsReloadOpFiltersEventKinds(t *testing.T) {
	tests := []struct {
		name     string
		op       fsnotify.Op
		expected bool
	}{
		{"create", fsnotify.Create, true},
		{"remove", fsnotify.Remove, true},
		{"write", fsnotify.Write, true},
		{"rename", fsnotify.Rename, true},
		{"chmod", fsnotify.Chmod, false},
		{"write and chmod", fsnotify.Write | fsnotify.Chmod, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isReloadOp(tt.op))
		})
	}
}
