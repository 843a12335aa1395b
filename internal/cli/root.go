// Package cli implements the command-line interface for markwatch
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/markwatch/markwatch/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	verboseMode bool
	version     string
	buildDate   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "markwatch",
	Short: "markwatch - View markdown files and keep an eye on them",
	Long: `markwatch renders markdown documents to HTML with a table of contents,
word count, and reading time, and can watch a file for changes to re-render it
live. Linked files referenced from a document can be opened safely: targets
outside the document's directory tree are rejected.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, bd string) {
	version = v
	buildDate = bd
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildDate)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.markwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add all subcommands
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".markwatch"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MARKWATCH")
	viper.AutomaticEnv()

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("watch.poll_interval", "1s")
	viper.SetDefault("render.performance_mode", false)
	viper.SetDefault("history.path", defaultHistoryPath())

	// Missing config file is fine, defaults apply
	viper.ReadInConfig()

	logCfg := logger.DefaultConfig()
	logCfg.Level = viper.GetString("logging.level")
	logCfg.Development = verboseMode
	if verboseMode {
		logCfg.Level = "debug"
	}
	if err := logger.Initialize(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}

func defaultHistoryPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".markwatch", "markwatch.db")
}
