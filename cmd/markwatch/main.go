// Package main is the entry point for the markwatch CLI application
package main

import (
	"fmt"
	"os"

	"github.com/markwatch/markwatch/internal/cli"
	"github.com/markwatch/markwatch/pkg/logger"
)

// Version information (set during build)
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	defer logger.Sync()

	cli.SetVersionInfo(Version, BuildDate)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
