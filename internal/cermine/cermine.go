// Package cermine extracts a publication's outbound references from its
// source PDF by running the CERMINE content extractor over a private
// working directory and parsing the JATS output it produces.
package cermine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/crystal/internal/citation"
)

// File names inside the working directory. CERMINE derives the output
// name from the input name.
const (
	DocumentFile = "pub.pdf"
	OutputFile   = "pub.cermxml"
)

// Runner invokes an extraction backend over a working directory that
// contains DocumentFile, leaving OutputFile behind on success. Implemented
// by JavaRunner in production and by fakes in tests.
type Runner interface {
	Run(ctx context.Context, workDir string) error
}

// ExtractionError indicates the external extractor failed or produced
// output that could not be parsed. The current pass is abandoned; the
// operation is safe to retry.
type ExtractionError struct {
	Stage string // "run", "read", or "parse"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("reference extraction failed (%s): %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor turns a source document into an ordered reference list.
type Extractor struct {
	runner Runner
}

// NewExtractor creates an Extractor using the given backend.
func NewExtractor(runner Runner) *Extractor {
	return &Extractor{runner: runner}
}

// ExtractReferences writes the document to an ephemeral working directory,
// runs the extraction backend, and parses the back-matter reference list
// from its output. The working directory is removed on every exit path;
// the original document is never touched.
func (e *Extractor) ExtractReferences(ctx context.Context, document []byte) ([]citation.RawReference, error) {
	workDir, err := os.MkdirTemp("", "crystal-extract-")
	if err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	docPath := filepath.Join(workDir, DocumentFile)
	if err := os.WriteFile(docPath, document, 0600); err != nil {
		return nil, fmt.Errorf("writing working copy: %w", err)
	}

	if err := e.runner.Run(ctx, workDir); err != nil {
		return nil, &ExtractionError{Stage: "run", Err: err}
	}

	output, err := os.ReadFile(filepath.Join(workDir, OutputFile))
	if err != nil {
		return nil, &ExtractionError{Stage: "read", Err: err}
	}

	refs, err := parseReferences(output)
	if err != nil {
		return nil, &ExtractionError{Stage: "parse", Err: err}
	}
	return refs, nil
}
