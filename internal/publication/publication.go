// Package publication defines the core domain type for publications in a
// citation network.
package publication

import (
	"errors"
	"net/url"
	"time"
)

// NetworkStatus describes a publication's standing within its network,
// independent of the citation graph.
type NetworkStatus string

// Valid network statuses.
const (
	StatusSuggested NetworkStatus = "SUGGESTED" // discovered via graph building
	StatusIncluded  NetworkStatus = "INCLUDED"  // accepted into the working bibliography
	StatusArchived  NetworkStatus = "ARCHIVED"  // rejected / set aside
	StatusUploaded  NetworkStatus = "UPLOADED"  // added directly by the user with a file
)

// Publication represents a paper belonging to exactly one network.
type Publication struct {
	ID        string `json:"id"`
	NetworkID string `json:"network_id"`

	Title  string `json:"title"`
	Author string `json:"author"` // free text, first author or author list as extracted
	Year   string `json:"year"`   // free text, may be empty
	URL    string `json:"url,omitempty"`

	// PDFPath is relative to the configured PDF root; empty when the
	// publication was created from a citation rather than an upload.
	PDFPath string `json:"pdf_path,omitempty"`

	NetworkStatus NetworkStatus `json:"network_status"`

	// Completion flags for the two graph-building passes. Each is set to
	// true exactly once, after the corresponding pass ran to completion.
	CitesCalculated   bool `json:"cites_calculated"`
	CitedByCalculated bool `json:"cited_by_calculated"`

	CreatedAt string `json:"created_at,omitempty"` // RFC3339
}

// Validation errors.
var (
	ErrEmptyID        = errors.New("id is required")
	ErrEmptyNetworkID = errors.New("network_id is required")
	ErrEmptyTitle     = errors.New("title is required")
	ErrInvalidStatus  = errors.New("invalid network_status")
	ErrNotFound       = errors.New("publication not found")
)

// ValidStatuses lists the accepted network status values.
var ValidStatuses = []NetworkStatus{StatusSuggested, StatusIncluded, StatusArchived, StatusUploaded}

// ValidStatus reports whether s is one of the accepted status values.
func ValidStatus(s NetworkStatus) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidateForCreate validates a publication for creation.
func (p *Publication) ValidateForCreate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if p.NetworkID == "" {
		return ErrEmptyNetworkID
	}
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.NetworkStatus != "" && !ValidStatus(p.NetworkStatus) {
		return ErrInvalidStatus
	}
	return nil
}

// SetCreatedAt sets the CreatedAt timestamp to the current time if unset.
func (p *Publication) SetCreatedAt() {
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
}

// IsIncluded reports whether the publication is part of the working
// bibliography.
func (p *Publication) IsIncluded() bool {
	return p.NetworkStatus == StatusIncluded
}

// Include marks the publication as part of the working bibliography.
func (p *Publication) Include() {
	p.NetworkStatus = StatusIncluded
}

// Archive sets the publication aside.
func (p *Publication) Archive() {
	p.NetworkStatus = StatusArchived
}

// LinkType values returned by LinkType.
const (
	LinkPDF    = "pdf"
	LinkSearch = "search"
)

// Link returns where a reader should be sent for this publication: the
// stored PDF path when there is one, else a Google Scholar search URL for
// the title.
func (p *Publication) Link() string {
	if p.PDFPath != "" {
		return p.PDFPath
	}
	return "https://scholar.google.com/scholar?q=" + url.QueryEscape(p.Title)
}

// LinkType reports whether Link points at a stored file or a search URL.
func (p *Publication) LinkType() string {
	if p.PDFPath != "" {
		return LinkPDF
	}
	return LinkSearch
}
