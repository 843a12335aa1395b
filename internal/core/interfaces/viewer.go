package interfaces

import (
	"github.com/markwatch/markwatch/pkg/models"
)

// FileRepository defines the contract for reading markdown documents from disk
type FileRepository interface {
	// Read resolves a path input (plain path or file: URI) and returns the
	// canonical path together with the file content
	Read(pathInput string) (string, string, error)
}

// Renderer defines the contract for turning markdown source into HTML plus
// document statistics
type Renderer interface {
	Render(markdown string, preferences models.RenderPreferences) (*models.RenderedMarkdown, error)
}
