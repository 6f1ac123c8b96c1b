package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/cermine"
	"github.com/matsen/crystal/internal/config"
	"github.com/matsen/crystal/internal/graph"
	"github.com/matsen/crystal/internal/resolve"
	"github.com/matsen/crystal/internal/scholar"
	"github.com/matsen/crystal/internal/storage"
)

func init() {
	rootCmd.AddCommand(citesCmd)
	rootCmd.AddCommand(citedByCmd)
}

var citesCmd = &cobra.Command{
	Use:   "cites <pub-id>",
	Short: "Build the outbound citation edges for a publication",
	Long: `Extract the publication's reference list from its PDF and link
each reference into the network: an edge to the matching publication when
one exists, a new suggested publication plus edge otherwise.

Runs at most once per publication; re-running after completion is a no-op.

Example:
  crystal cites 4f1c9ad2-...`,
	Args: cobra.ExactArgs(1),
	RunE: runCites,
}

func runCites(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	b := newGraphBuilder(cfg, db)
	pubID := args[0]

	// Completed vs skipped is reported from the flag state before the call.
	before, err := db.GetPublication(pubID)
	if err != nil {
		exitWithError(ExitError, "looking up publication: %v", err)
	}

	if err := b.BuildCites(context.Background(), pubID); err != nil {
		exitPassError("cites", err)
	}

	reportPass(db, pubID, "cites", before.CitesCalculated)
	return nil
}

var citedByCmd = &cobra.Command{
	Use:   "cited-by <pub-id>",
	Short: "Build the inbound citation edges for a publication",
	Long: `Query the external citation index for the works citing this
publication and link each into the network, pointing at this publication.

Runs at most once per publication; re-running after completion is a no-op.

Example:
  crystal cited-by 4f1c9ad2-...`,
	Args: cobra.ExactArgs(1),
	RunE: runCitedBy,
}

func runCitedBy(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	b := newGraphBuilder(cfg, db)
	pubID := args[0]

	before, err := db.GetPublication(pubID)
	if err != nil {
		exitWithError(ExitError, "looking up publication: %v", err)
	}

	if err := b.BuildCitedBy(context.Background(), pubID); err != nil {
		exitPassError("cited_by", err)
	}

	reportPass(db, pubID, "cited_by", before.CitedByCalculated)
	return nil
}

// newGraphBuilder wires the builder from repository and global config.
func newGraphBuilder(cfg *config.Config, db *storage.DB) *graph.Builder {
	jar := cfg.CermineJar
	if jar == "" {
		if global, err := config.LoadGlobalConfig(); err == nil {
			jar = global.CermineJar
		}
	}

	runner := &cermine.JavaRunner{
		JavaBin: cfg.JavaBin,
		JarPath: config.ExpandPath(jar),
		Timeout: time.Duration(cfg.ExtractTimeoutSeconds) * time.Second,
	}
	extractor := cermine.NewExtractor(runner)

	var opts []scholar.ClientOption
	if key := config.GetScholarAPIKey(); key != "" {
		opts = append(opts, scholar.WithAPIKey(key))
	}
	client := scholar.NewClient(opts...)

	resolver := resolve.New()
	resolver.Threshold = cfg.Threshold()

	return graph.NewBuilder(db, extractor, client, resolver, config.ExpandPath(cfg.PDFRoot))
}

// exitPassError maps a pass failure onto the exit-code taxonomy.
func exitPassError(direction string, err error) {
	var extErr *cermine.ExtractionError
	var integrity *graph.IntegrityError
	switch {
	case errors.Is(err, graph.ErrNoSourceDocument):
		exitWithError(ExitError, "%v", err)
	case errors.As(err, &extErr):
		exitWithError(ExitExtractError, "%s pass: %v", direction, err)
	case errors.As(err, &integrity):
		exitWithError(ExitDataError, "%s pass: %v", direction, err)
	case scholar.IsNoMatch(err) || scholar.IsServiceError(err):
		exitWithError(ExitLookupError, "%s pass: %v", direction, err)
	default:
		exitWithError(ExitError, "%s pass: %v", direction, err)
	}
}

// reportPass emits the pass outcome with the network's new size.
func reportPass(db *storage.DB, pubID, direction string, alreadyDone bool) {
	pub, err := db.GetPublication(pubID)
	if err != nil {
		exitWithError(ExitError, "reloading publication: %v", err)
	}
	pubs, err := db.ListPublications(pub.NetworkID)
	if err != nil {
		exitWithError(ExitError, "listing publications: %v", err)
	}
	edges, err := db.CountCitations(pub.NetworkID)
	if err != nil {
		exitWithError(ExitError, "counting edges: %v", err)
	}

	status := "completed"
	if alreadyDone {
		status = "already_calculated"
	}

	if humanOutput {
		if alreadyDone {
			fmt.Printf("%s already calculated for %s\n", direction, pubID)
		} else {
			fmt.Printf("%s pass complete for %s\n", direction, pubID)
		}
		fmt.Printf("Network now has %d publications, %d edges\n", len(pubs), edges)
	} else {
		outputJSON(PassResponse{
			Status:       status,
			Publication:  pubID,
			Direction:    direction,
			NetworkSize:  len(pubs),
			NetworkEdges: edges,
		})
	}
}
