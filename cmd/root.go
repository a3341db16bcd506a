package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chatlens/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatlens",
	Short: "Normalize and analyze chat exports",
	Long: `A CLI tool to normalize chat exports from multiple platforms into a
common conversation model and run analytics over them.

Supported inputs are detected automatically (generic JSON exports,
WhatsApp text exports). Analysis covers sentiment, relationship
structure, activity patterns, and content signals.

Quick Start:
  chatlens detect chat.txt                # Which adapter handles this file?
  chatlens analyze chat.txt               # Analyze one export
  chatlens batch ./exports --format md    # Analyze a directory of exports

For detailed usage, see: https://github.com/iksnae/chatlens`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
		// Credentials may live in a local .env; absence is not an error.
		if err := godotenv.Load(); err == nil {
			internal.LogDebug("Loaded environment from .env")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML analysis config file")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
