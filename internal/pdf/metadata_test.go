package pdf

import (
	"testing"

	"github.com/matsen/crystal/internal/publication"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain doi",
			text: "available at doi 10.1093/sysbio/syaa001 online",
			want: "10.1093/sysbio/syaa001",
		},
		{
			name: "trailing punctuation stripped",
			text: "see 10.1371/journal.pcbi.1009822.",
			want: "10.1371/journal.pcbi.1009822",
		},
		{
			name: "no doi",
			text: "this page mentions nothing useful",
			want: "",
		},
		{
			name: "prefix without suffix rejected",
			text: "numbered 10.1234/ x",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsHeaderLine(t *testing.T) {
	if !isHeaderLine("Journal of Theoretical Biology") {
		t.Error("journal banner should be treated as a header")
	}
	if isHeaderLine("A Statistical Framework for Citation Networks") {
		t.Error("plausible title misclassified as header")
	}
}

func TestOpener_Resolve(t *testing.T) {
	o := NewOpener("", "system")
	if _, err := o.Resolve(&publication.Publication{ID: "p1", PDFPath: "x.pdf"}); err == nil {
		t.Error("Resolve() without pdf_root should fail")
	}

	o = NewOpener(t.TempDir(), "system")
	if _, err := o.Resolve(&publication.Publication{ID: "p1"}); err == nil {
		t.Error("Resolve() without a stored PDF should fail")
	}
	if _, err := o.Resolve(&publication.Publication{ID: "p1", PDFPath: "missing.pdf"}); err == nil {
		t.Error("Resolve() with a missing file should fail")
	}
}
