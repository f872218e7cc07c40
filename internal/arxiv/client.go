package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tanmay/paper-scout/internal/models"
)

// UpstreamError reports a non-2xx status from the arXiv API.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("arxiv search returned %s", e.Status)
}

// Client queries the arXiv export API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: &http.Client{}}
}

// Atom feed structures for the arXiv query response.
type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID      string   `xml:"id"`
	Title   string   `xml:"title"`
	Summary string   `xml:"summary"`
	Authors []author `xml:"author"`
}

type author struct {
	Name string `xml:"name"`
}

// Search issues one query against arXiv and returns up to maxResults papers.
// Zero entries is a valid empty result, not an error. Missing sub-fields
// become empty strings/slices so papers never carry nulls downstream.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.Paper, error) {
	if maxResults <= 0 {
		maxResults = 6
	}

	u := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d",
		c.baseURL, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("arxiv request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("arxiv response: %w", err)
	}

	papers := make([]models.Paper, 0, len(f.Entries))
	for _, e := range f.Entries {
		p := models.Paper{
			Title:    strings.TrimSpace(e.Title),
			Abstract: strings.TrimSpace(e.Summary),
			Link:     strings.TrimSpace(e.ID),
			Authors:  []string{},
		}
		for _, a := range e.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				p.Authors = append(p.Authors, name)
			}
		}
		papers = append(papers, p)
	}
	return papers, nil
}
