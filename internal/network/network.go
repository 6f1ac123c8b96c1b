// Package network defines the domain type for a working bibliography.
package network

import (
	"errors"
	"time"
)

// Network is a named collection of publications owned by one profile.
type Network struct {
	ID        string `json:"id"`
	Name      string `json:"name"`                 // the project's working title
	Owner     string `json:"owner"`                // owning profile identifier
	CreatedAt string `json:"created_at,omitempty"` // RFC3339
}

// Validation errors.
var (
	ErrEmptyID     = errors.New("id is required")
	ErrEmptyName   = errors.New("name is required")
	ErrEmptyOwner  = errors.New("owner is required")
	ErrDuplicateID = errors.New("network with this id already exists")
	ErrNotFound    = errors.New("network not found")
)

// ValidateForCreate validates a network for creation.
func (n *Network) ValidateForCreate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if n.Name == "" {
		return ErrEmptyName
	}
	if n.Owner == "" {
		return ErrEmptyOwner
	}
	return nil
}

// SetCreatedAt sets the CreatedAt timestamp to the current time if unset.
func (n *Network) SetCreatedAt() {
	if n.CreatedAt == "" {
		n.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
}
