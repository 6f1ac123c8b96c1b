// Package graph builds the directed citation graph: it extracts references
// for a publication, resolves each against the network's known titles, and
// applies the resulting node and edge mutations idempotently.
package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/matsen/crystal/internal/citation"
	"github.com/matsen/crystal/internal/publication"
	"github.com/matsen/crystal/internal/resolve"
)

// Store is the persistence surface the builder needs. Each call is assumed
// atomic. AddCitation has set semantics: re-adding an existing edge is a
// no-op.
type Store interface {
	GetPublication(id string) (*publication.Publication, error)
	ListPublications(networkID string) ([]publication.Publication, error)
	GetPublicationsByTitle(networkID, title string) ([]publication.Publication, error)
	CreatePublication(p *publication.Publication) error
	UpdatePublication(p *publication.Publication) error
	AddCitation(citingID, citedID string) error
	CitedIDs(pubID string) ([]string, error)
	CitingIDs(pubID string) ([]string, error)
}

// Extractor produces the ordered outbound reference list from a source
// document.
type Extractor interface {
	ExtractReferences(ctx context.Context, document []byte) ([]citation.RawReference, error)
}

// CitationSource enumerates the works citing a given title.
type CitationSource interface {
	FindCitingWorks(ctx context.Context, title string) ([]citation.RawReference, error)
}

// Builder orchestrates the two graph-building passes.
type Builder struct {
	store     Store
	extractor Extractor
	source    CitationSource
	resolver  *resolve.Resolver
	pdfRoot   string

	// Per-publication claim locks. A pass holds its publication's lock
	// from the flag check through the flag commit, so two concurrent
	// invocations cannot both run.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewBuilder creates a Builder. pdfRoot is the directory publication
// PDF paths are relative to.
func NewBuilder(store Store, extractor Extractor, source CitationSource, resolver *resolve.Resolver, pdfRoot string) *Builder {
	return &Builder{
		store:     store,
		extractor: extractor,
		source:    source,
		resolver:  resolver,
		pdfRoot:   pdfRoot,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lock returns the claim lock for a publication, creating it on first use.
func (b *Builder) lock(pubID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.locks[pubID]
	if !ok {
		l = &sync.Mutex{}
		b.locks[pubID] = l
	}
	return l
}

// BuildCites runs the outbound pass for a publication: extract its
// reference list from the source document, resolve each reference, and add
// edges pub -> cited. Idempotent: once CitesCalculated is set the call is
// a no-op. The flag is committed only after the whole pass succeeds, so a
// failed pass is safe to retry.
func (b *Builder) BuildCites(ctx context.Context, pubID string) error {
	l := b.lock(pubID)
	l.Lock()
	defer l.Unlock()

	pub, err := b.store.GetPublication(pubID)
	if err != nil {
		return err
	}
	if pub.CitesCalculated {
		return nil
	}
	if pub.PDFPath == "" {
		return fmt.Errorf("%w: %s", ErrNoSourceDocument, pubID)
	}

	document, err := os.ReadFile(filepath.Join(b.pdfRoot, pub.PDFPath))
	if err != nil {
		return fmt.Errorf("reading source document: %w", err)
	}

	refs, err := b.extractor.ExtractReferences(ctx, document)
	if err != nil {
		return err
	}

	known, err := b.knownTitles(pub.NetworkID)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		cited, err := b.resolveOrCreate(ref, pub.NetworkID, known)
		if err != nil {
			return err
		}
		if err := b.store.AddCitation(pub.ID, cited.ID); err != nil {
			return fmt.Errorf("adding citation edge: %w", err)
		}
	}

	pub.CitesCalculated = true
	if err := b.store.UpdatePublication(pub); err != nil {
		return fmt.Errorf("committing cites flag: %w", err)
	}
	return nil
}

// BuildCitedBy runs the inbound pass: enumerate the works citing the
// publication via the external index and add edges citing -> pub.
// Idempotent via CitedByCalculated, with the same commit-last semantics as
// BuildCites.
func (b *Builder) BuildCitedBy(ctx context.Context, pubID string) error {
	l := b.lock(pubID)
	l.Lock()
	defer l.Unlock()

	pub, err := b.store.GetPublication(pubID)
	if err != nil {
		return err
	}
	if pub.CitedByCalculated {
		return nil
	}

	refs, err := b.source.FindCitingWorks(ctx, pub.Title)
	if err != nil {
		return err
	}

	known, err := b.knownTitles(pub.NetworkID)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		citing, err := b.resolveOrCreate(ref, pub.NetworkID, known)
		if err != nil {
			return err
		}
		if err := b.store.AddCitation(citing.ID, pub.ID); err != nil {
			return fmt.Errorf("adding citation edge: %w", err)
		}
	}

	pub.CitedByCalculated = true
	if err := b.store.UpdatePublication(pub); err != nil {
		return fmt.Errorf("committing cited-by flag: %w", err)
	}
	return nil
}

// knownTitles snapshots the network's matching pool. The snapshot is taken
// once per pass: publications created mid-pass do not become match targets
// for later references in the same pass.
func (b *Builder) knownTitles(networkID string) ([]string, error) {
	pubs, err := b.store.ListPublications(networkID)
	if err != nil {
		return nil, fmt.Errorf("listing network publications: %w", err)
	}
	return b.resolver.KnownTitles(pubs), nil
}

// resolveOrCreate maps one reference record to a publication: the unique
// existing one carrying the resolved title, or a newly created suggested
// publication. The new node is persisted before any edge references it.
func (b *Builder) resolveOrCreate(ref citation.RawReference, networkID string, known []string) (*publication.Publication, error) {
	result := b.resolver.Resolve(ref, known)
	if result.Matched {
		matches, err := b.store.GetPublicationsByTitle(networkID, result.Title)
		if err != nil {
			return nil, fmt.Errorf("looking up resolved title: %w", err)
		}
		if len(matches) != 1 {
			return nil, &IntegrityError{NetworkID: networkID, Title: result.Title, Count: len(matches)}
		}
		return &matches[0], nil
	}

	pub := &publication.Publication{
		ID:            uuid.NewString(),
		NetworkID:     networkID,
		Title:         ref.Title,
		Author:        ref.Author,
		Year:          ref.Year,
		NetworkStatus: publication.StatusSuggested,
	}
	pub.SetCreatedAt()
	if err := b.store.CreatePublication(pub); err != nil {
		return nil, fmt.Errorf("creating suggested publication: %w", err)
	}
	return pub, nil
}
