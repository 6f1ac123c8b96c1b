package graph

import (
	"errors"
	"fmt"
)

// ErrNoSourceDocument indicates an outbound pass was requested for a
// publication with no source file. This is a caller error, not a
// retryable failure.
var ErrNoSourceDocument = errors.New("publication has no source document")

// IntegrityError indicates the store violated the resolver's uniqueness
// assumption: a resolved title must identify exactly one publication in
// the network.
type IntegrityError struct {
	NetworkID string
	Title     string
	Count     int
}

func (e *IntegrityError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("data integrity: resolved title %q not found in network %s", e.Title, e.NetworkID)
	}
	return fmt.Sprintf("data integrity: title %q appears %d times in network %s", e.Title, e.Count, e.NetworkID)
}
