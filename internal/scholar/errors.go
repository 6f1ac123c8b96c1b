package scholar

import (
	"errors"
	"fmt"
)

// Common errors returned by the citation index client.
var (
	// ErrNoMatch indicates the index resolved no record for the title.
	ErrNoMatch = errors.New("no index match for title")

	// ErrServiceUnavailable indicates a transport or availability failure.
	// The pass can be retried later.
	ErrServiceUnavailable = errors.New("citation index unavailable")

	// ErrRateLimited indicates the index rate limit was exceeded.
	ErrRateLimited = errors.New("citation index rate limit exceeded")

	// ErrInvalidResponse indicates the index returned a record missing a
	// field it guarantees.
	ErrInvalidResponse = errors.New("invalid response from citation index")
)

// APIError represents an error response from the citation index.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("citation index error (status %d): %s", e.StatusCode, e.Message)
}

// IsNoMatch returns true if the error means the title resolved to nothing.
func IsNoMatch(err error) bool {
	if errors.Is(err, ErrNoMatch) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsServiceError returns true if the error is a transport or availability
// failure rather than a definitive negative answer.
func IsServiceError(err error) bool {
	if errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
