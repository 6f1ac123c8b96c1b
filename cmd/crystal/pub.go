package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/graph"
	"github.com/matsen/crystal/internal/publication"
)

func init() {
	rootCmd.AddCommand(pubCmd)
}

var pubCmd = &cobra.Command{
	Use:   "pub <pub-id>",
	Short: "Show a single publication",
	Args:  cobra.ExactArgs(1),
	RunE:  runPub,
}

// PubResponse is the JSON output of the pub command.
type PubResponse struct {
	publication.Publication
	Related  int      `json:"related"`
	Link     string   `json:"link"`
	LinkType string   `json:"link_type"`
	Cites    []string `json:"cites"`
	CitedBy  []string `json:"cited_by"`
}

func runPub(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pub, err := db.GetPublication(args[0])
	if err != nil {
		exitWithError(ExitError, "looking up publication: %v", err)
	}

	related, err := graph.NRelated(db, pub)
	if err != nil {
		exitWithError(ExitError, "counting related publications: %v", err)
	}

	if humanOutput {
		printPubDetail(*pub, related)
		return nil
	}

	cited, err := db.CitedIDs(pub.ID)
	if err != nil {
		exitWithError(ExitError, "listing cited publications: %v", err)
	}
	citing, err := db.CitingIDs(pub.ID)
	if err != nil {
		exitWithError(ExitError, "listing citing publications: %v", err)
	}
	if cited == nil {
		cited = []string{}
	}
	if citing == nil {
		citing = []string{}
	}

	outputJSON(PubResponse{
		Publication: *pub,
		Related:     related,
		Link:        pub.Link(),
		LinkType:    pub.LinkType(),
		Cites:       cited,
		CitedBy:     citing,
	})
	return nil
}
