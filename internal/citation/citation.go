// Package citation defines the transient reference record produced by
// extraction before it is resolved into the graph.
package citation

// Sentinel values used when a field cannot be recovered from the source.
const (
	NoTitleFound   = "No Title Found"
	NoYear         = "No Year"
	AuthorNotFound = "Author Not Found"
)

// Provenance values for RawReference.Source.
const (
	SourceDocument = "document" // extracted from the publication's own PDF
	SourceIndex    = "index"    // returned by the external citation index
)

// RawReference is a best-effort (title, author, year) tuple extracted from
// a source document or the external index. It is not persisted; resolution
// decides whether it maps to an existing publication or becomes a new one.
type RawReference struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
	Source string `json:"source"` // document or index
}
