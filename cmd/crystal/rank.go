package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/graph"
	"github.com/matsen/crystal/internal/publication"
)

var rankNetworkID string

func init() {
	rankCmd.Flags().StringVar(&rankNetworkID, "network", "", "Network to rank (required)")
	rankCmd.MarkFlagRequired("network")
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidate publications by included connections",
	Long: `List the network's publications that are connected to at least
one INCLUDED publication, most connected first. This is the review queue:
the top entries are the papers most entangled with the bibliography that
aren't in it yet.`,
	RunE: runRank,
}

// RankResponse is the JSON output of the rank command.
type RankResponse struct {
	Included []publication.Publication `json:"included"`
	Related  []graph.RankedPublication `json:"related"`
}

func runRank(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pubs, err := db.ListPublications(rankNetworkID)
	if err != nil {
		exitWithError(ExitError, "listing publications: %v", err)
	}

	var included []publication.Publication
	for _, p := range pubs {
		if p.IsIncluded() {
			included = append(included, p)
		}
	}

	ranked, err := graph.RankRelated(db, rankNetworkID)
	if err != nil {
		exitWithError(ExitError, "ranking publications: %v", err)
	}

	if humanOutput {
		fmt.Printf("Included (%d):\n", len(included))
		for _, p := range included {
			fmt.Printf("  %s\n", formatPubLine(p))
		}
		fmt.Printf("\nRelated candidates (%d):\n", len(ranked))
		for _, r := range ranked {
			fmt.Printf("  %2d  %s\n", r.Related, formatPubLine(r.Publication))
		}
	} else {
		if included == nil {
			included = []publication.Publication{}
		}
		if ranked == nil {
			ranked = []graph.RankedPublication{}
		}
		outputJSON(RankResponse{Included: included, Related: ranked})
	}
	return nil
}
