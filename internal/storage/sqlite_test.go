package storage

import (
	"path/filepath"
	"testing"

	"github.com/matsen/crystal/internal/network"
	"github.com/matsen/crystal/internal/publication"
)

// setupTestDB creates a test database seeded with one network and three
// publications.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	net := &network.Network{ID: "net-1", Name: "Phylogenetics Review", Owner: "erick"}
	net.SetCreatedAt()
	if err := db.CreateNetwork(net); err != nil {
		t.Fatalf("Failed to create network: %v", err)
	}

	pubs := []publication.Publication{
		{
			ID:            "pub-survey",
			NetworkID:     "net-1",
			Title:         "Deep Learning Survey",
			Author:        "A. Jones",
			Year:          "2015",
			PDFPath:       "Papers/survey.pdf",
			NetworkStatus: publication.StatusUploaded,
		},
		{
			ID:            "pub-graph",
			NetworkID:     "net-1",
			Title:         "Graph Theory Basics",
			Author:        "J. Smith",
			Year:          "2001",
			NetworkStatus: publication.StatusIncluded,
		},
		{
			ID:            "pub-new",
			NetworkID:     "net-1",
			Title:         "Brand New Paper",
			Author:        "B. Lee",
			NetworkStatus: publication.StatusSuggested,
		},
	}
	for i := range pubs {
		pubs[i].SetCreatedAt()
		if err := db.CreatePublication(&pubs[i]); err != nil {
			t.Fatalf("Failed to create publication %s: %v", pubs[i].ID, err)
		}
	}

	return db
}

func TestNetworks(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetNetwork("net-1")
	if err != nil {
		t.Fatalf("GetNetwork() error = %v", err)
	}
	if got.Name != "Phylogenetics Review" || got.Owner != "erick" {
		t.Errorf("GetNetwork() = %+v", got)
	}

	if _, err := db.GetNetwork("nope"); err != network.ErrNotFound {
		t.Errorf("GetNetwork(missing) error = %v, want ErrNotFound", err)
	}

	nets, err := db.ListNetworks()
	if err != nil {
		t.Fatalf("ListNetworks() error = %v", err)
	}
	if len(nets) != 1 {
		t.Errorf("ListNetworks() returned %d networks, want 1", len(nets))
	}
}

func TestPublications_RoundTrip(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetPublication("pub-survey")
	if err != nil {
		t.Fatalf("GetPublication() error = %v", err)
	}
	if got.Title != "Deep Learning Survey" || got.Author != "A. Jones" || got.Year != "2015" {
		t.Errorf("GetPublication() = %+v", got)
	}
	if got.NetworkStatus != publication.StatusUploaded {
		t.Errorf("status = %s, want UPLOADED", got.NetworkStatus)
	}
	if got.CitesCalculated || got.CitedByCalculated {
		t.Error("new publication should have both flags unset")
	}

	got.CitesCalculated = true
	got.NetworkStatus = publication.StatusIncluded
	if err := db.UpdatePublication(got); err != nil {
		t.Fatalf("UpdatePublication() error = %v", err)
	}

	again, err := db.GetPublication("pub-survey")
	if err != nil {
		t.Fatal(err)
	}
	if !again.CitesCalculated {
		t.Error("CitesCalculated not persisted")
	}
	if again.CitedByCalculated {
		t.Error("CitedByCalculated flipped without being set")
	}
	if again.NetworkStatus != publication.StatusIncluded {
		t.Errorf("status = %s after update", again.NetworkStatus)
	}
}

func TestPublications_Validation(t *testing.T) {
	db := setupTestDB(t)

	bad := &publication.Publication{ID: "x", NetworkID: "net-1"}
	if err := db.CreatePublication(bad); err != publication.ErrEmptyTitle {
		t.Errorf("CreatePublication(no title) error = %v, want ErrEmptyTitle", err)
	}

	if err := db.UpdatePublication(&publication.Publication{ID: "ghost", Title: "T", NetworkStatus: publication.StatusSuggested}); err != publication.ErrNotFound {
		t.Errorf("UpdatePublication(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGetPublicationsByTitle(t *testing.T) {
	db := setupTestDB(t)

	one, err := db.GetPublicationsByTitle("net-1", "Graph Theory Basics")
	if err != nil {
		t.Fatalf("GetPublicationsByTitle() error = %v", err)
	}
	if len(one) != 1 || one[0].ID != "pub-graph" {
		t.Errorf("GetPublicationsByTitle() = %+v", one)
	}

	none, err := db.GetPublicationsByTitle("net-1", "Missing Title")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("got %d publications for a missing title", len(none))
	}

	// Duplicate titles are returned as-is; the builder is the layer that
	// flags them as an integrity violation.
	dup := &publication.Publication{ID: "pub-dup", NetworkID: "net-1", Title: "Graph Theory Basics", NetworkStatus: publication.StatusSuggested}
	if err := db.CreatePublication(dup); err != nil {
		t.Fatal(err)
	}
	two, err := db.GetPublicationsByTitle("net-1", "Graph Theory Basics")
	if err != nil {
		t.Fatal(err)
	}
	if len(two) != 2 {
		t.Errorf("got %d publications for a duplicated title, want 2", len(two))
	}
}

func TestCitations_SetSemantics(t *testing.T) {
	db := setupTestDB(t)

	if err := db.AddCitation("pub-survey", "pub-graph"); err != nil {
		t.Fatalf("AddCitation() error = %v", err)
	}
	// Re-adding the same ordered pair is a no-op.
	if err := db.AddCitation("pub-survey", "pub-graph"); err != nil {
		t.Fatalf("AddCitation(duplicate) error = %v", err)
	}
	// The reverse direction is a distinct edge.
	if err := db.AddCitation("pub-graph", "pub-survey"); err != nil {
		t.Fatalf("AddCitation(reverse) error = %v", err)
	}

	cited, err := db.CitedIDs("pub-survey")
	if err != nil {
		t.Fatal(err)
	}
	if len(cited) != 1 || cited[0] != "pub-graph" {
		t.Errorf("CitedIDs() = %v", cited)
	}

	citing, err := db.CitingIDs("pub-survey")
	if err != nil {
		t.Fatal(err)
	}
	if len(citing) != 1 || citing[0] != "pub-graph" {
		t.Errorf("CitingIDs() = %v", citing)
	}

	n, err := db.CountCitations("net-1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountCitations() = %d, want 2", n)
	}
}

func TestDeleteNetwork_Cascades(t *testing.T) {
	db := setupTestDB(t)

	if err := db.AddCitation("pub-survey", "pub-graph"); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteNetwork("net-1"); err != nil {
		t.Fatalf("DeleteNetwork() error = %v", err)
	}

	if _, err := db.GetPublication("pub-survey"); err != publication.ErrNotFound {
		t.Errorf("publication survived network deletion: %v", err)
	}
	cited, err := db.CitedIDs("pub-survey")
	if err != nil {
		t.Fatal(err)
	}
	if len(cited) != 0 {
		t.Errorf("edges survived network deletion: %v", cited)
	}

	if err := db.DeleteNetwork("net-1"); err != network.ErrNotFound {
		t.Errorf("DeleteNetwork(missing) error = %v, want ErrNotFound", err)
	}
}
