package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/config"
	"github.com/matsen/crystal/internal/pdf"
	"github.com/matsen/crystal/internal/publication"
)

var (
	addNetworkID string
	addTitle     string
	addAuthor    string
	addYear      string
	addPDF       string
)

func init() {
	addCmd.Flags().StringVar(&addNetworkID, "network", "", "Network to add the publication to (required)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Title (sniffed from the PDF if omitted)")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "Author display string")
	addCmd.Flags().StringVar(&addYear, "year", "", "Publication year")
	addCmd.Flags().StringVar(&addPDF, "pdf", "", "PDF path relative to pdf_root (required)")
	addCmd.MarkFlagRequired("network")
	addCmd.MarkFlagRequired("pdf")
	rootCmd.AddCommand(addCmd)

	suggestCmd.Flags().StringVar(&addNetworkID, "network", "", "Network to add the publication to (required)")
	suggestCmd.Flags().StringVar(&addAuthor, "author", "", "Author display string")
	suggestCmd.Flags().StringVar(&addYear, "year", "", "Publication year")
	suggestCmd.MarkFlagRequired("network")
	rootCmd.AddCommand(suggestCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an uploaded publication with its PDF",
	Long: `Add a publication backed by a PDF under the configured pdf_root.

The title is sniffed from the PDF's first page when not given, and a DOI
is recorded when one can be found.

Example:
  crystal add --network <id> --pdf Papers/smith2024.pdf --author "J. Smith"`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if _, err := db.GetNetwork(addNetworkID); err != nil {
		exitWithError(ExitDataError, "looking up network: %v", err)
	}

	fullPath := filepath.Join(config.ExpandPath(cfg.PDFRoot), addPDF)

	title := addTitle
	if title == "" {
		sniffed, err := pdf.SniffTitle(fullPath)
		if err != nil {
			exitWithError(ExitError, "reading PDF: %v", err)
		}
		title = sniffed
	}
	if title == "" {
		exitWithError(ExitError, "no title given and none found in the PDF; pass --title")
	}

	url := ""
	if doi, err := pdf.SniffDOI(fullPath); err == nil && doi != "" {
		url = "https://doi.org/" + doi
	}

	p := &publication.Publication{
		ID:            uuid.NewString(),
		NetworkID:     addNetworkID,
		Title:         title,
		Author:        addAuthor,
		Year:          addYear,
		URL:           url,
		PDFPath:       addPDF,
		NetworkStatus: publication.StatusUploaded,
	}
	p.SetCreatedAt()

	if err := db.CreatePublication(p); err != nil {
		exitWithError(ExitDataError, "creating publication: %v", err)
	}

	if humanOutput {
		fmt.Printf("Added %s\n  %s\n", p.ID, formatPubLine(*p))
	} else {
		outputJSON(p)
	}
	return nil
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <title>",
	Short: "Add a publication without a file",
	Long: `Add a publication by title only, in SUGGESTED status.

Example:
  crystal suggest "Graph Theory Basics" --network <id> --author "J. Smith" --year 2001`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if _, err := db.GetNetwork(addNetworkID); err != nil {
		exitWithError(ExitDataError, "looking up network: %v", err)
	}

	p := &publication.Publication{
		ID:            uuid.NewString(),
		NetworkID:     addNetworkID,
		Title:         args[0],
		Author:        addAuthor,
		Year:          addYear,
		NetworkStatus: publication.StatusSuggested,
	}
	p.SetCreatedAt()

	if err := db.CreatePublication(p); err != nil {
		exitWithError(ExitDataError, "creating publication: %v", err)
	}

	if humanOutput {
		fmt.Printf("Suggested %s\n  %s\n", p.ID, formatPubLine(*p))
	} else {
		outputJSON(p)
	}
	return nil
}
