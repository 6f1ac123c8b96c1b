package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matsen/crystal/internal/publication"
)

// CreatePublication inserts a publication.
func (d *DB) CreatePublication(p *publication.Publication) error {
	if err := p.ValidateForCreate(); err != nil {
		return err
	}
	if p.NetworkStatus == "" {
		p.NetworkStatus = publication.StatusSuggested
	}

	_, err := d.db.Exec(`
		INSERT INTO publications (
			id, network_id, title, author, year, url, pdf_path,
			network_status, cites_calculated, cited_by_calculated, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.NetworkID, p.Title, p.Author, p.Year, p.URL, p.PDFPath,
		string(p.NetworkStatus), boolToInt(p.CitesCalculated), boolToInt(p.CitedByCalculated), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting publication: %w", err)
	}
	return nil
}

// GetPublication returns a publication by ID.
func (d *DB) GetPublication(id string) (*publication.Publication, error) {
	row := d.db.QueryRow(`
		SELECT `+selectPubFields+` FROM publications WHERE id = ?
	`, id)

	p, err := scanPublication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, publication.ErrNotFound
		}
		return nil, fmt.Errorf("querying publication: %w", err)
	}
	return p, nil
}

// ListPublications returns all publications in a network, oldest first.
func (d *DB) ListPublications(networkID string) ([]publication.Publication, error) {
	rows, err := d.db.Query(`
		SELECT `+selectPubFields+` FROM publications
		WHERE network_id = ?
		ORDER BY created_at, id
	`, networkID)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// GetPublicationsByTitle returns the publications in a network carrying
// exactly the given title. The graph builder treats any count other than
// one for a resolved title as a data-integrity violation.
func (d *DB) GetPublicationsByTitle(networkID, title string) ([]publication.Publication, error) {
	rows, err := d.db.Query(`
		SELECT `+selectPubFields+` FROM publications
		WHERE network_id = ? AND title = ?
		ORDER BY created_at, id
	`, networkID, title)
	if err != nil {
		return nil, fmt.Errorf("querying publications by title: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// UpdatePublication persists a mutated publication.
func (d *DB) UpdatePublication(p *publication.Publication) error {
	res, err := d.db.Exec(`
		UPDATE publications SET
			title = ?, author = ?, year = ?, url = ?, pdf_path = ?,
			network_status = ?, cites_calculated = ?, cited_by_calculated = ?
		WHERE id = ?
	`, p.Title, p.Author, p.Year, p.URL, p.PDFPath,
		string(p.NetworkStatus), boolToInt(p.CitesCalculated), boolToInt(p.CitedByCalculated), p.ID)
	if err != nil {
		return fmt.Errorf("updating publication: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return publication.ErrNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPublication(row rowScanner) (*publication.Publication, error) {
	var p publication.Publication
	var author, year, url, pdfPath, createdAt sql.NullString
	var status string
	var cites, citedBy int

	err := row.Scan(&p.ID, &p.NetworkID, &p.Title, &author, &year, &url, &pdfPath,
		&status, &cites, &citedBy, &createdAt)
	if err != nil {
		return nil, err
	}

	p.Author = author.String
	p.Year = year.String
	p.URL = url.String
	p.PDFPath = pdfPath.String
	p.CreatedAt = createdAt.String
	p.NetworkStatus = publication.NetworkStatus(status)
	p.CitesCalculated = cites != 0
	p.CitedByCalculated = citedBy != 0
	return &p, nil
}

func scanPublications(rows *sql.Rows) ([]publication.Publication, error) {
	var pubs []publication.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		pubs = append(pubs, *p)
	}
	return pubs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
