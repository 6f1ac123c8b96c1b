package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <pub-id> <include|archive>",
	Short: "Change a publication's network status",
	Long: `Move a publication into or out of the working bibliography.

Examples:
  crystal status 4f1c9ad2-... include
  crystal status 4f1c9ad2-... archive`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pub, err := db.GetPublication(args[0])
	if err != nil {
		exitWithError(ExitError, "looking up publication: %v", err)
	}

	switch args[1] {
	case "include":
		pub.Include()
	case "archive":
		pub.Archive()
	default:
		exitWithError(ExitError, "unknown status transition %q (want include or archive)", args[1])
	}

	if err := db.UpdatePublication(pub); err != nil {
		exitWithError(ExitError, "updating publication: %v", err)
	}

	if humanOutput {
		fmt.Printf("%s is now %s\n", pub.ID, pub.NetworkStatus)
	} else {
		outputJSON(StatusResponse{Status: string(pub.NetworkStatus), ID: pub.ID})
	}
	return nil
}
