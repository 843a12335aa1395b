// Package viewer wires the repository and renderer into the document loading
// use case
package viewer

import (
	"path/filepath"
	"strings"

	"github.com/markwatch/markwatch/internal/core/interfaces"
	"github.com/markwatch/markwatch/pkg/models"
)

// Loader loads a markdown file from disk and renders it into a Document
type Loader struct {
	repository interfaces.FileRepository
	renderer   interfaces.Renderer
}

// NewLoader creates a loader over the given collaborators
func NewLoader(repository interfaces.FileRepository, renderer interfaces.Renderer) *Loader {
	return &Loader{repository: repository, renderer: renderer}
}

// Load reads and renders the document at pathInput. The title is the first
// TOC heading when one exists, otherwise it is derived from the file name.
func (l *Loader) Load(pathInput string, preferences models.RenderPreferences) (*models.Document, error) {
	path, source, err := l.repository.Read(pathInput)
	if err != nil {
		return nil, err
	}

	rendered, err := l.renderer.Render(source, preferences)
	if err != nil {
		return nil, err
	}

	title := titleFromPath(path)
	if len(rendered.Toc) > 0 {
		title = rendered.Toc[0].Text
	}

	return &models.Document{
		Path:               path,
		Title:              title,
		Source:             source,
		HTML:               rendered.HTML,
		Toc:                rendered.Toc,
		WordCount:          rendered.WordCount,
		ReadingTimeMinutes: rendered.ReadingTimeMinutes,
	}, nil
}

func titleFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem == "" {
		return "Markdown"
	}
	return strings.NewReplacer("_", " ", "-", " ").Replace(stem)
}
