package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matsen/crystal/internal/network"
)

// CreateNetwork inserts a network.
func (d *DB) CreateNetwork(n *network.Network) error {
	if err := n.ValidateForCreate(); err != nil {
		return err
	}

	_, err := d.db.Exec(`
		INSERT INTO networks (id, name, owner, created_at)
		VALUES (?, ?, ?, ?)
	`, n.ID, n.Name, n.Owner, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting network: %w", err)
	}
	return nil
}

// GetNetwork returns a network by ID.
func (d *DB) GetNetwork(id string) (*network.Network, error) {
	row := d.db.QueryRow(`
		SELECT id, name, owner, created_at FROM networks WHERE id = ?
	`, id)

	var n network.Network
	var createdAt sql.NullString
	if err := row.Scan(&n.ID, &n.Name, &n.Owner, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, network.ErrNotFound
		}
		return nil, fmt.Errorf("querying network: %w", err)
	}
	n.CreatedAt = createdAt.String
	return &n, nil
}

// ListNetworks returns all networks ordered by name.
func (d *DB) ListNetworks() ([]network.Network, error) {
	rows, err := d.db.Query(`
		SELECT id, name, owner, created_at FROM networks ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying networks: %w", err)
	}
	defer rows.Close()

	var networks []network.Network
	for rows.Next() {
		var n network.Network
		var createdAt sql.NullString
		if err := rows.Scan(&n.ID, &n.Name, &n.Owner, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning network: %w", err)
		}
		n.CreatedAt = createdAt.String
		networks = append(networks, n)
	}
	return networks, rows.Err()
}

// DeleteNetwork removes a network; its publications and their edges go
// with it via the cascade.
func (d *DB) DeleteNetwork(id string) error {
	res, err := d.db.Exec(`DELETE FROM networks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting network: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return network.ErrNotFound
	}
	return nil
}
