// Package main provides the crystal CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/config"
	"github.com/matsen/crystal/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crystal",
	Short: "Citation network manager for working bibliographies",
	Long: `crystal maintains directed citation graphs over networks of
publications. It extracts a paper's reference list from its PDF, queries
an external index for the papers citing it, and links both into the
network, creating suggested publications for anything not seen before.

All commands output JSON by default for easy scripting; pass --human for
terminal-friendly output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory repository discovery starts
// from: CRYSTAL_ROOT when set, else the working directory.
func getStartingDirectory() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	if root := os.Getenv("CRYSTAL_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}

// mustFindRepository finds the repository root, exits on error.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\nRun 'crystal init' to create one.\n", err)
		os.Exit(ExitConfigError)
	}
	return repoRoot
}

// mustOpenDatabase opens the SQLite database, exits on error.
func mustOpenDatabase(repoRoot string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// envUser returns the current username, used as the default network owner.
func envUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
