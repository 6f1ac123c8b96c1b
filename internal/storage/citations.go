package storage

import (
	"fmt"
)

// AddCitation records that one publication cites another. Set semantics:
// inserting an edge that already exists is a no-op. Both endpoints must
// exist, which the builder guarantees by creating nodes before edges.
func (d *DB) AddCitation(citingID, citedID string) error {
	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO citations (citing_id, cited_id)
		VALUES (?, ?)
	`, citingID, citedID)
	if err != nil {
		return fmt.Errorf("inserting citation: %w", err)
	}
	return nil
}

// CitedIDs returns the publications the given one cites.
func (d *DB) CitedIDs(pubID string) ([]string, error) {
	return d.queryIDs(`
		SELECT cited_id FROM citations WHERE citing_id = ? ORDER BY cited_id
	`, pubID)
}

// CitingIDs returns the publications citing the given one. This is the
// same edge set viewed in reverse; the inverse relation is not stored
// separately.
func (d *DB) CitingIDs(pubID string) ([]string, error) {
	return d.queryIDs(`
		SELECT citing_id FROM citations WHERE cited_id = ? ORDER BY citing_id
	`, pubID)
}

// CountCitations returns the total number of edges in a network.
func (d *DB) CountCitations(networkID string) (int, error) {
	row := d.db.QueryRow(`
		SELECT COUNT(*) FROM citations c
		JOIN publications p ON p.id = c.citing_id
		WHERE p.network_id = ?
	`, networkID)

	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting citations: %w", err)
	}
	return n, nil
}

func (d *DB) queryIDs(query, arg string) ([]string, error) {
	rows, err := d.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning citation: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
