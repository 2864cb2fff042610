// Package cli defines the Cobra command tree for the geoembed CLI.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geoembed/geoembed/internal/config"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"

	verbose bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "geoembed",
	Short: "Turn GeoGebra embed codes into sized iframe tags",
	Long: `geoembed takes the embed code GeoGebra gives you for a material,
rewrites the width, height and toolbar settings baked into its URL, and
prints an iframe tag ready to paste into a page or a rich-text editor.

Run 'geoembed build --width 800 --height 450 < embed.txt' to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	rootCmd.AddCommand(
		newBuildCmd(),
		newBatchCmd(),
		newWatchCmd(),
		newMCPCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "geoembed %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// newLogger returns a text logger on stderr. Debug output is enabled by
// --verbose or output.verbose in the config.
func newLogger(cfg config.GlobalConfig) *slog.Logger {
	level := slog.LevelInfo
	if verbose || cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig returns the effective config for the current directory.
func loadConfig() (config.GlobalConfig, error) {
	root, err := findRoot()
	if err != nil {
		return config.DefaultGlobal(), err
	}
	return config.Load(root)
}

// findRoot returns the nearest directory at or above cwd holding a
// .geoembed/ directory, or cwd itself.
func findRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return findRootFrom(cwd), nil
}

func findRootFrom(start string) string {
	dir, _ := filepath.Abs(start)
	for {
		if fi, err := os.Stat(config.ProjectConfigDirPath(dir)); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	abs, _ := filepath.Abs(start)
	return abs
}
