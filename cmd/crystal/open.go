package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/config"
	"github.com/matsen/crystal/internal/pdf"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <pub-id>",
	Short: "Open a publication's PDF in the configured reader",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pub, err := db.GetPublication(args[0])
	if err != nil {
		exitWithError(ExitError, "looking up publication: %v", err)
	}

	opener := pdf.NewOpener(config.ExpandPath(cfg.PDFRoot), cfg.PDFReader)
	if pub.PDFPath == "" {
		// No stored file: fall back to the search link instead of failing.
		if humanOutput {
			fmt.Printf("No stored PDF; search link:\n  %s\n", pub.Link())
		} else {
			outputJSON(StatusResponse{Status: "no_pdf", ID: pub.ID, Path: pub.Link()})
		}
		return nil
	}

	if err := opener.Open(pub); err != nil {
		exitWithError(ExitError, "opening PDF: %v", err)
	}

	path, _ := opener.Resolve(pub)
	if humanOutput {
		fmt.Printf("Opened %s\n", path)
	} else {
		outputJSON(StatusResponse{Status: "opened", ID: pub.ID, Path: path})
	}
	return nil
}
