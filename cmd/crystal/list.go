package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/publication"
)

var (
	listNetworkID string
	listStatus    string
)

func init() {
	listCmd.Flags().StringVar(&listNetworkID, "network", "", "Network to list (required)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by network status (SUGGESTED, INCLUDED, ARCHIVED, UPLOADED)")
	listCmd.MarkFlagRequired("network")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a network's publications",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if listStatus != "" && !publication.ValidStatus(publication.NetworkStatus(listStatus)) {
		exitWithError(ExitError, "invalid status filter %q", listStatus)
	}

	pubs, err := db.ListPublications(listNetworkID)
	if err != nil {
		exitWithError(ExitError, "listing publications: %v", err)
	}

	if listStatus != "" {
		filtered := pubs[:0]
		for _, p := range pubs {
			if p.NetworkStatus == publication.NetworkStatus(listStatus) {
				filtered = append(filtered, p)
			}
		}
		pubs = filtered
	}

	if humanOutput {
		for _, p := range pubs {
			fmt.Printf("%s  %s\n", p.ID, formatPubLine(p))
		}
	} else {
		if pubs == nil {
			pubs = []publication.Publication{}
		}
		outputJSON(pubs)
	}
	return nil
}
