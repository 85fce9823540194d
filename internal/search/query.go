package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/traveljournal/journal-server/internal/util"
)

// Sort orders.
const (
	SortRelevance = "relevance"
	SortDate      = "date"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // Free text matched against location and description

	// Filters
	Tag    string // Tag name; matched by slug
	UserID int64  // Restrict to one author's entries when non-zero

	// Pagination
	Limit  int
	Offset int

	SortBy    string // "relevance" or "date"
	SortOrder string // "asc" or "desc"
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		SortBy:    SortRelevance,
		SortOrder: "desc",
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string
	Total  uint64
	TookMs int64
	Hits   []SearchHit
}

// SearchHit is one matching entry.
type SearchHit struct {
	EntryID    int64
	Score      float64
	Location   string
	Highlights map[string]string
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	addSorting(searchRequest, params)

	if params.Query != "" {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("location")
		searchRequest.Highlight.AddField("description")
	}

	searchRequest.Fields = []string{"entry_id", "location"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{Score: hit.Score}

		if id, ok := hit.Fields["entry_id"].(float64); ok {
			searchHit.EntryID = int64(id)
		}
		if loc, ok := hit.Fields["location"].(string); ok {
			searchHit.Location = loc
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
// Text clauses are OR'd together; filters are AND'd onto the result.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if params.Query != "" {
		lowered := strings.ToLower(params.Query)

		locationMatch := bleve.NewMatchQuery(params.Query)
		locationMatch.SetField("location")
		locationMatch.SetBoost(3.0)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")

		// Typo tolerance on location
		fuzzyQuery := bleve.NewFuzzyQuery(lowered)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("location")
		fuzzyQuery.SetBoost(0.8)

		textQueries := []query.Query{locationMatch, descMatch, fuzzyQuery}

		// Prefix for type-ahead (minimum 2 chars)
		if len(lowered) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(lowered)
			prefixQuery.SetField("location")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if slug := util.Slugify(params.Tag); slug != "" {
		tq := bleve.NewTermQuery(slug)
		tq.SetField("tags")
		queries = append(queries, tq)
	}

	if params.UserID != 0 {
		id := float64(params.UserID)
		inclusive := true
		uq := bleve.NewNumericRangeInclusiveQuery(&id, &id, &inclusive, &inclusive)
		uq.SetField("user_id")
		queries = append(queries, uq)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order. Relevance is the default.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case SortDate:
		if params.SortOrder == "asc" {
			req.SortBy([]string{"date", "entry_id"})
		} else {
			req.SortBy([]string{"-date", "-entry_id"})
		}
	default:
		req.SortBy([]string{"-_score", "entry_id"})
	}
}
