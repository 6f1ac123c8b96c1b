// Package scholar provides a client for the external bibliographic index
// used to enumerate the works citing a publication.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/crystal/internal/citation"
)

const (
	// BaseURL is the citation index API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit is 1 request per second, the unauthenticated index limit.
	RateLimit = 1.0

	// CitationsPageSize is how many citing works are fetched per page.
	CitationsPageSize = 100

	// MaxCitationPages bounds pagination so a pathological record cannot
	// hold a pass open indefinitely.
	MaxCitationPages = 50

	// citationFields are the record fields requested for citing works.
	citationFields = "title,authors,year"
)

// Client is a rate-limited HTTP client for the citation index.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new citation index client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if key := os.Getenv("SCHOLAR_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FindCitingWorks resolves the title against the index, takes the best
// match, and enumerates the works citing it. A missing author on a citing
// work is a hard failure: the index guarantees the field on resolved
// records, so its absence means the response cannot be trusted.
func (c *Client) FindCitingWorks(ctx context.Context, title string) ([]citation.RawReference, error) {
	paper, err := c.searchBestMatch(ctx, title)
	if err != nil {
		return nil, err
	}

	var refs []citation.RawReference
	offset := 0
	for page := 0; page < MaxCitationPages; page++ {
		resp, err := c.citationsPage(ctx, paper.PaperID, offset)
		if err != nil {
			return nil, err
		}

		for _, entry := range resp.Data {
			ref, err := citingWorkToReference(entry)
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		}

		if resp.Next == 0 {
			break
		}
		offset = resp.Next
	}
	return refs, nil
}

// searchBestMatch returns the first index match for a title query.
func (c *Client) searchBestMatch(ctx context.Context, title string) (*Paper, error) {
	endpoint := fmt.Sprintf("%s/paper/search?query=%s&fields=title&limit=1",
		c.baseURL, url.QueryEscape(title))

	var resp SearchResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("searching index for %q: %w", title, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, title)
	}
	return &resp.Data[0], nil
}

// citationsPage fetches one page of the "cited by" relation for a record.
func (c *Client) citationsPage(ctx context.Context, paperID string, offset int) (*CitationsResponse, error) {
	endpoint := fmt.Sprintf("%s/paper/%s/citations?fields=%s&offset=%d&limit=%d",
		c.baseURL, url.PathEscape(paperID), citationFields, offset, CitationsPageSize)

	var resp CitationsResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetching citations for %s: %w", paperID, err)
	}
	return &resp, nil
}

// citingWorkToReference maps one citations entry to a reference record.
func citingWorkToReference(entry CitationEntry) (citation.RawReference, error) {
	paper := entry.CitingPaper
	if paper == nil || paper.Title == "" {
		return citation.RawReference{}, fmt.Errorf("%w: citing work without title", ErrInvalidResponse)
	}
	author := formatAuthors(paper.Authors)
	if author == "" {
		return citation.RawReference{}, fmt.Errorf("%w: citing work %q has no author", ErrInvalidResponse, paper.Title)
	}

	year := ""
	if paper.Year > 0 {
		year = strconv.Itoa(paper.Year)
	}

	return citation.RawReference{
		Title:  paper.Title,
		Author: author,
		Year:   year,
		Source: citation.SourceIndex,
	}, nil
}

// formatAuthors renders an author list as a single display string.
func formatAuthors(authors []Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, " and ")
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return ErrNoMatch
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
