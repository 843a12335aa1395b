package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/markwatch/markwatch/internal/history"
	"github.com/markwatch/markwatch/internal/render"
	"github.com/markwatch/markwatch/internal/resolver"
	"github.com/markwatch/markwatch/internal/viewer"
	"github.com/markwatch/markwatch/pkg/logger"
	"github.com/markwatch/markwatch/pkg/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var viewHTMLOut string

// viewCmd renders a markdown file once and prints a summary
var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Render a markdown file",
	Long:  `Render a markdown file to HTML and print its title, table of contents, word count, and reading time.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewHTMLOut, "html", "", "write rendered HTML to this file")
}

func runView(cmd *cobra.Command, args []string) error {
	loader := viewer.NewLoader(resolver.NewLocalRepository(), render.NewGoldmarkRenderer())

	doc, err := loader.Load(args[0], renderPreferences())
	if err != nil {
		return err
	}

	if viewHTMLOut != "" {
		if err := os.WriteFile(viewHTMLOut, []byte(doc.HTML), 0644); err != nil {
			return fmt.Errorf("failed to write HTML output: %w", err)
		}
	}

	printDocumentSummary(doc)
	recordView(doc)

	return nil
}

func printDocumentSummary(doc *models.Document) {
	fmt.Printf("%s\n", doc.Title)
	fmt.Printf("  %s\n", doc.Path)
	fmt.Printf("  %d words, ~%d min read\n", doc.WordCount, doc.ReadingTimeMinutes)
	if len(doc.Toc) > 0 {
		fmt.Println()
		for _, entry := range doc.Toc {
			fmt.Printf("  %s%s\n", strings.Repeat("  ", entry.Level-1), entry.Text)
		}
	}
}

// recordView is best effort; a broken history database never fails the view
func recordView(doc *models.Document) {
	store, err := history.Open(viper.GetString("history.path"))
	if err != nil {
		logger.Get().Warn("Failed to open history store", zap.Error(err))
		return
	}
	defer store.Close()

	if err := store.Touch(models.RecentDocument{
		Path:      doc.Path,
		Title:     doc.Title,
		WordCount: doc.WordCount,
	}); err != nil {
		logger.Get().Warn("Failed to record document view", zap.Error(err))
	}
}

func renderPreferences() models.RenderPreferences {
	prefs := models.DefaultRenderPreferences()
	prefs.PerformanceMode = viper.GetBool("render.performance_mode")
	return prefs
}
