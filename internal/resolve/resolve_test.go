package resolve

import (
	"strings"
	"testing"

	"github.com/matsen/crystal/internal/citation"
	"github.com/matsen/crystal/internal/publication"
)

func TestResolver_Resolve(t *testing.T) {
	r := New()

	tests := []struct {
		name      string
		candidate string
		known     []string
		wantMatch bool
		wantTitle string
	}{
		{
			name:      "exact title matches",
			candidate: "Deep Learning Survey",
			known:     []string{"Deep Learning Survey", "Graph Theory Basics"},
			wantMatch: true,
			wantTitle: "Deep Learning Survey",
		},
		{
			name:      "one-letter typo matches",
			candidate: "Deep Learning Survay",
			known:     []string{"Deep Learning Survey", "Graph Theory Basics"},
			wantMatch: true,
			wantTitle: "Deep Learning Survey",
		},
		{
			name:      "unrelated title does not match",
			candidate: "Brand New Paper",
			known:     []string{"Deep Learning Survey", "Graph Theory Basics"},
			wantMatch: false,
		},
		{
			name:      "empty pool never matches",
			candidate: "Deep Learning Survey",
			known:     nil,
			wantMatch: false,
		},
		{
			name:      "tie broken by first highest found",
			candidate: "abcd",
			known:     []string{"abcx", "abcy"},
			wantMatch: true,
			wantTitle: "abcx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(citation.RawReference{Title: tt.candidate}, tt.known)
			if got.Matched != tt.wantMatch {
				t.Fatalf("Resolve(%q).Matched = %v, want %v (score %d)", tt.candidate, got.Matched, tt.wantMatch, got.Score)
			}
			if tt.wantMatch && got.Title != tt.wantTitle {
				t.Errorf("Resolve(%q).Title = %q, want %q", tt.candidate, got.Title, tt.wantTitle)
			}
		})
	}
}

// The acceptance threshold is inclusive: a ratio of exactly 75 matches, 74
// does not.
func TestResolver_ThresholdBoundary(t *testing.T) {
	r := New()

	// "abcd" vs "abcx": 3 matching chars over 8 total, ratio 75.
	at := r.Resolve(citation.RawReference{Title: "abcd"}, []string{"abcx"})
	if at.Score != 75 {
		t.Fatalf("score = %d, want 75", at.Score)
	}
	if !at.Matched {
		t.Error("score 75 should match")
	}

	// 20 matching chars over 54 total, ratio 74.07 -> 74.
	a := strings.Repeat("a", 20)
	below := r.Resolve(
		citation.RawReference{Title: a + strings.Repeat("x", 7)},
		[]string{a + strings.Repeat("y", 7)},
	)
	if below.Matched {
		t.Errorf("score %d should not match", below.Score)
	}
}

func TestResolver_KnownTitlesDenylist(t *testing.T) {
	r := New()

	pubs := []publication.Publication{
		{Title: "Deep Learning Survey"},
		{Title: citation.NoTitleFound},
		{Title: "and"},
		{Title: "Graph Theory Basics"},
	}

	titles := r.KnownTitles(pubs)
	if len(titles) != 2 {
		t.Fatalf("KnownTitles() = %v, want 2 titles", titles)
	}
	for _, title := range titles {
		if title == citation.NoTitleFound || title == "and" {
			t.Errorf("denylisted title %q offered as match target", title)
		}
	}

	// A candidate carrying the sentinel title never matches, even though
	// an identical string exists in the network.
	got := r.Resolve(citation.RawReference{Title: citation.NoTitleFound}, titles)
	if got.Matched {
		t.Errorf("sentinel candidate resolved to %q", got.Title)
	}
}

func TestResolver_CustomThreshold(t *testing.T) {
	r := &Resolver{Threshold: 90, Denylist: DefaultDenylist}

	// Ratio 75 fails under a raised threshold.
	got := r.Resolve(citation.RawReference{Title: "abcd"}, []string{"abcx"})
	if got.Matched {
		t.Errorf("score %d should not match threshold 90", got.Score)
	}
}
