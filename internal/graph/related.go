package graph

import (
	"fmt"
	"sort"

	"github.com/matsen/crystal/internal/publication"
)

// RankedPublication pairs a publication with its related-count for the
// ranking view.
type RankedPublication struct {
	Publication publication.Publication `json:"publication"`
	Related     int                     `json:"related"`
}

// NRelated counts the directly connected publications currently marked
// INCLUDED, in either edge direction. An included publication reports 0:
// the count exists to rank candidates for inclusion, not members.
func NRelated(store Store, pub *publication.Publication) (int, error) {
	if pub.IsIncluded() {
		return 0, nil
	}

	cited, err := store.CitedIDs(pub.ID)
	if err != nil {
		return 0, fmt.Errorf("listing cited publications: %w", err)
	}
	citing, err := store.CitingIDs(pub.ID)
	if err != nil {
		return 0, fmt.Errorf("listing citing publications: %w", err)
	}

	n := 0
	for _, id := range append(cited, citing...) {
		neighbor, err := store.GetPublication(id)
		if err != nil {
			return 0, fmt.Errorf("loading neighbor %s: %w", id, err)
		}
		if neighbor.IsIncluded() {
			n++
		}
	}
	return n, nil
}

// RankRelated returns the network's publications with a non-zero related
// count, most related first. Ordering among equal counts follows the
// store's listing order.
func RankRelated(store Store, networkID string) ([]RankedPublication, error) {
	pubs, err := store.ListPublications(networkID)
	if err != nil {
		return nil, fmt.Errorf("listing network publications: %w", err)
	}

	var ranked []RankedPublication
	for i := range pubs {
		n, err := NRelated(store, &pubs[i])
		if err != nil {
			return nil, err
		}
		if n > 0 {
			ranked = append(ranked, RankedPublication{Publication: pubs[i], Related: n})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Related > ranked[j].Related
	})
	return ranked, nil
}
