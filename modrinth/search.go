package modrinth

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Search indexes.
const (
	IndexRelevance = "relevance"
	IndexDownloads = "downloads"
	IndexFollows   = "follows"
	IndexNewest    = "newest"
	IndexUpdated   = "updated"
)

// SearchOptions configures a project search. The zero value searches
// everything with the server defaults (relevance order, 10 hits).
type SearchOptions struct {
	Query string
	// Facets narrow the search; each inner slice is OR-ed, the outer slices
	// are AND-ed, e.g. [["categories:fabric"],["versions:1.20.1"]].
	Facets [][]string
	// Index selects the sort order; one of the Index constants.
	Index  string
	Offset int
	Limit  int
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Hits      []*SearchResultModel `json:"hits"`
	Offset    int                  `json:"offset"`
	Limit     int                  `json:"limit"`
	TotalHits int                  `json:"total_hits"`
}

// SearchProjects queries the search index. Hits are summaries, not full
// projects; use Project on a hit to fetch the real thing.
func (c *Client) SearchProjects(opts SearchOptions) (*SearchResult, error) {
	query := url.Values{}
	if opts.Query != "" {
		query.Set("query", opts.Query)
	}
	if opts.Facets != nil {
		encoded, err := json.Marshal(opts.Facets)
		if err != nil {
			return nil, err
		}
		query.Set("facets", string(encoded))
	}
	if opts.Index != "" {
		query.Set("index", opts.Index)
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	body, err := c.makeGet("/search", query, "search results", "search projects")
	if err != nil {
		return nil, err
	}

	var page struct {
		Hits      []json.RawMessage `json:"hits"`
		Offset    int               `json:"offset"`
		Limit     int               `json:"limit"`
		TotalHits int               `json:"total_hits"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	result := &SearchResult{
		Hits:      make([]*SearchResultModel, 0, len(page.Hits)),
		Offset:    page.Offset,
		Limit:     page.Limit,
		TotalHits: page.TotalHits,
	}
	for _, hit := range page.Hits {
		model, err := ParseSearchResultModel(hit)
		if err != nil {
			return nil, err
		}
		result.Hits = append(result.Hits, model)
	}
	return result, nil
}

// Project fetches the full project a search hit summarizes.
func (m *SearchResultModel) Project(client *Client) (*Project, error) {
	return client.GetProject(*m.ProjectID)
}
