package cli

import (
	"fmt"

	"github.com/markwatch/markwatch/internal/history"
	"github.com/markwatch/markwatch/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var recentLimit int

// recentCmd lists recently viewed documents
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently viewed documents",
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", history.DefaultLimit, "maximum number of entries to show")
}

func runRecent(cmd *cobra.Command, args []string) error {
	store, err := history.Open(viper.GetString("history.path"))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(recentLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No documents viewed yet")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%-10s %s (%d words)\n", utils.FormatRelativeTime(entry.OpenedAt), entry.Path, entry.WordCount)
	}
	return nil
}
