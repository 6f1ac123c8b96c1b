// Package resolve decides whether an extracted reference is already a
// publication in the network or a genuinely new one.
package resolve

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/matsen/crystal/internal/citation"
	"github.com/matsen/crystal/internal/publication"
)

// DefaultThreshold is the minimum fuzz ratio score for a candidate title
// to be accepted as a match against a known title.
const DefaultThreshold = 75

// DefaultDenylist lists degenerate titles excluded from the candidate
// pool. They carry no identity: matching against them would glue
// unrelated publications together.
var DefaultDenylist = []string{citation.NoTitleFound, "and"}

// Result is the outcome of resolving one reference. When Matched is true,
// Title is the known title the candidate resolved to and Score its fuzz
// ratio. A candidate never resolves to more than one title.
type Result struct {
	Matched bool
	Title   string
	Score   int
}

// Resolver matches extracted reference titles against a network's known
// titles using a character-level edit-distance ratio.
type Resolver struct {
	Threshold int
	Denylist  []string
}

// New returns a Resolver with the default threshold and denylist.
func New() *Resolver {
	return &Resolver{Threshold: DefaultThreshold, Denylist: DefaultDenylist}
}

// denied reports whether a title is on the denylist.
func (r *Resolver) denied(title string) bool {
	for _, d := range r.Denylist {
		if title == d {
			return true
		}
	}
	return false
}

// KnownTitles builds the matching pool from a network's publications,
// excluding denylisted titles. The pool is a snapshot: callers run one
// whole pass against it without refreshing.
func (r *Resolver) KnownTitles(pubs []publication.Publication) []string {
	titles := make([]string, 0, len(pubs))
	for _, p := range pubs {
		if r.denied(p.Title) {
			continue
		}
		titles = append(titles, p.Title)
	}
	return titles
}

// Resolve scores the candidate's title against every known title and
// returns the single best match if its score meets the threshold. Ties are
// broken by the first highest score found, so the result is deterministic
// for a fixed pool order.
func (r *Resolver) Resolve(candidate citation.RawReference, knownTitles []string) Result {
	best := Result{}
	for _, known := range knownTitles {
		score := fuzzy.Ratio(candidate.Title, known)
		if !best.Matched || score > best.Score {
			best = Result{Matched: true, Title: known, Score: score}
		}
	}
	if !best.Matched || best.Score < r.Threshold {
		return Result{}
	}
	return best
}
