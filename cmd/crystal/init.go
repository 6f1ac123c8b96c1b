package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/config"
	"github.com/matsen/crystal/internal/storage"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new crystal repository",
	Long: `Initialize a new crystal repository in the current directory.

Creates:
  .crystal/
  ├── config.json     # Default config
  └── crystal.db      # SQLite database`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a crystal repository")
	}

	if err := os.MkdirAll(config.CrystalPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .crystal directory: %v", err)
	}

	cfg := &config.Config{PDFReader: "system"}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "writing default config: %v", err)
	}

	// Create the database up front so the first command that needs it
	// doesn't pay schema-creation latency.
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "creating database: %v", err)
	}
	db.Close()

	if humanOutput {
		fmt.Printf("Initialized crystal repository in %s\n", config.CrystalPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.CrystalPath(root)})
	}
	return nil
}
