package scholar

// Paper represents a record in the citation index.
type Paper struct {
	PaperID string   `json:"paperId"`
	Title   string   `json:"title"`
	Authors []Author `json:"authors,omitempty"`
	Year    int      `json:"year,omitempty"`
}

// Author represents an author entry on an index record.
type Author struct {
	AuthorID string `json:"authorId,omitempty"`
	Name     string `json:"name"`
}

// SearchResponse is the response from the paper search endpoint.
type SearchResponse struct {
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Next   int     `json:"next,omitempty"`
	Data   []Paper `json:"data"`
}

// CitationEntry wraps one citing work in a citations response.
type CitationEntry struct {
	CitingPaper *Paper `json:"citingPaper"`
}

// CitationsResponse is one page from the citations endpoint.
type CitationsResponse struct {
	Offset int             `json:"offset"`
	Next   int             `json:"next,omitempty"`
	Data   []CitationEntry `json:"data"`
}
