package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/markwatch/markwatch/internal/render"
	"github.com/markwatch/markwatch/internal/resolver"
	"github.com/markwatch/markwatch/internal/viewer"
	"github.com/markwatch/markwatch/internal/watchers"
	"github.com/markwatch/markwatch/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// watchCmd watches a markdown file and re-renders it on every change
var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a markdown file and re-render on change",
	Long: `Watch a markdown file for changes and re-render it each time it is
modified, created, or removed. Uses the OS file notification mechanism when
available and falls back to polling otherwise. Interrupt to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	loader := viewer.NewLoader(resolver.NewLocalRepository(), render.NewGoldmarkRenderer())

	manager := watchers.NewManager(viper.GetDuration("watch.poll_interval"))
	defer manager.Close()

	// A full buffer just drops notifications; the next one re-renders anyway
	changes := make(chan string, 16)
	err := manager.Start(args[0], func(changedPath string) {
		select {
		case changes <- changedPath:
		default:
		}
	})
	if err != nil {
		return err
	}

	if doc, err := loader.Load(manager.WatchedPath(), renderPreferences()); err == nil {
		printDocumentSummary(doc)
	}
	fmt.Printf("\nWatching %s (interrupt to stop)\n", manager.WatchedPath())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-interrupt:
			manager.Stop()
			fmt.Println("Stopped watching")
			return nil
		case changedPath := <-changes:
			doc, err := loader.Load(changedPath, renderPreferences())
			if err != nil {
				// The file may be mid-write or temporarily gone; keep watching
				logger.Get().Warn("Reload failed",
					zap.String("path", changedPath),
					zap.Error(err),
				)
				fmt.Printf("! %s: %v\n", changedPath, err)
				continue
			}
			fmt.Printf("~ %s (%d words)\n", doc.Path, doc.WordCount)
		}
	}
}
