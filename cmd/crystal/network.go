package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/network"
)

var networkOwner string

func init() {
	networkCreateCmd.Flags().StringVar(&networkOwner, "owner", "", "Owning profile (defaults to $USER)")
	networkCmd.AddCommand(networkCreateCmd)
	networkCmd.AddCommand(networkListCmd)
	networkCmd.AddCommand(networkDeleteCmd)
	rootCmd.AddCommand(networkCmd)
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage citation networks",
}

var networkCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new network",
	Long: `Create a new network (a working bibliography).

Example:
  crystal network create "Phylogenetics Review"`,
	Args: cobra.ExactArgs(1),
	RunE: runNetworkCreate,
}

func runNetworkCreate(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	owner := networkOwner
	if owner == "" {
		owner = envUser()
	}

	n := &network.Network{
		ID:    uuid.NewString(),
		Name:  args[0],
		Owner: owner,
	}
	n.SetCreatedAt()

	if err := db.CreateNetwork(n); err != nil {
		exitWithError(ExitDataError, "creating network: %v", err)
	}

	if humanOutput {
		fmt.Printf("Created network %s (%s)\n", n.Name, n.ID)
	} else {
		outputJSON(n)
	}
	return nil
}

var networkDeleteCmd = &cobra.Command{
	Use:   "delete <network-id>",
	Short: "Delete a network and everything in it",
	Long: `Delete a network. Its publications and their citation edges are
removed with it. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: runNetworkDelete,
}

func runNetworkDelete(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if err := db.DeleteNetwork(args[0]); err != nil {
		exitWithError(ExitDataError, "deleting network: %v", err)
	}

	if humanOutput {
		fmt.Printf("Deleted network %s\n", args[0])
	} else {
		outputJSON(StatusResponse{Status: "deleted", ID: args[0]})
	}
	return nil
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all networks",
	RunE:  runNetworkList,
}

func runNetworkList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	networks, err := db.ListNetworks()
	if err != nil {
		exitWithError(ExitError, "listing networks: %v", err)
	}

	if humanOutput {
		for _, n := range networks {
			pubs, err := db.ListPublications(n.ID)
			if err != nil {
				exitWithError(ExitError, "listing publications: %v", err)
			}
			fmt.Printf("%s  %s (%d publications, owner %s)\n", n.ID, n.Name, len(pubs), n.Owner)
		}
	} else {
		if networks == nil {
			networks = []network.Network{}
		}
		outputJSON(networks)
	}
	return nil
}
