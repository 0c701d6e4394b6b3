package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnana997/propview/pkg/util"
)

var (
	cfgFile   string
	rootDir   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "propview",
	Short: "Component metadata extraction for interactive previews",
	Long: `propview scans TypeScript/JSX component sources and produces a
JSON metadata document describing each exported component: prop shapes,
enum values, defaults, JSDoc examples, and wrapper elements. A companion
registry module maps component names to lazy imports.`,
}

// Execute runs the root command and exits non-zero on fatal errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default probes propview.yaml in the project root)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format (text or json)")
}

// newLogger builds the process logger from the global flags.
func newLogger() *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	if verbose {
		cfg.Level = util.LevelDebug
	}
	if logFormat == "json" {
		cfg.Format = util.FormatJSON
	}
	return util.NewLogger(cfg)
}
