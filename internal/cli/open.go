package cli

import (
	"fmt"

	"github.com/markwatch/markwatch/internal/links"
	"github.com/spf13/cobra"
)

var openFromDoc string

// openCmd opens a file linked from a markdown document, restricted to the
// document's directory tree
var openCmd = &cobra.Command{
	Use:   "open [linked-file]",
	Short: "Open a file linked from a markdown document",
	Long: `Open a linked file with the platform's default handler. The target is
only opened when it resolves inside the directory tree of the document that
links to it; symlinks and relative segments are resolved before the check.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVar(&openFromDoc, "from", "", "path of the markdown document containing the link (required)")
	openCmd.MarkFlagRequired("from")
}

func runOpen(cmd *cobra.Command, args []string) error {
	authorizer := links.NewAuthorizer(links.NewLocalCanonicalizer(), links.NewDetachedOpener())

	if err := authorizer.Open(args[0], openFromDoc); err != nil {
		return err
	}

	fmt.Printf("Opened %s\n", args[0])
	return nil
}
