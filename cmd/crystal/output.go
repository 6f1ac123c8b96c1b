package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/crystal/internal/publication"
)

// Title truncation lengths by context.
const (
	ListTitleMaxLen = 50 // Used in list/rank output
	ShowTitleMaxLen = 70 // Used in pub detail view
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON)
// and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Path   string `json:"path,omitempty"`
}

// PassResponse reports the outcome of a graph-building pass.
type PassResponse struct {
	Status       string `json:"status"` // completed, already_calculated
	Publication  string `json:"publication"`
	Direction    string `json:"direction"` // cites, cited_by
	NetworkSize  int    `json:"network_size"`
	NetworkEdges int    `json:"network_edges"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatPubLine renders one publication for list-style human output.
func formatPubLine(p publication.Publication) string {
	year := p.Year
	if year == "" {
		year = "????"
	}
	return fmt.Sprintf("[%-9s] %s (%s) by %s",
		p.NetworkStatus, truncateString(p.Title, ListTitleMaxLen), year, p.Author)
}

// printPubDetail renders a publication detail view.
func printPubDetail(p publication.Publication, related int) {
	fmt.Println(p.ID)
	fmt.Println(strings.Repeat("=", ShowTitleMaxLen))
	fmt.Printf("Title:    %s\n", p.Title)
	fmt.Printf("Author:   %s\n", p.Author)
	if p.Year != "" {
		fmt.Printf("Year:     %s\n", p.Year)
	}
	fmt.Printf("Status:   %s\n", p.NetworkStatus)
	fmt.Printf("Network:  %s\n", p.NetworkID)
	fmt.Printf("Related:  %d included\n", related)
	fmt.Printf("Link:     %s (%s)\n", p.Link(), p.LinkType())
	fmt.Printf("Passes:   cites=%v cited_by=%v\n", p.CitesCalculated, p.CitedByCalculated)
}
