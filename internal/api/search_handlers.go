package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/traveljournal/journal-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchEntries",
		Method:      http.MethodGet,
		Path:        "/api/entries/search",
		Summary:     "Search entries",
		Description: "Full-text search over entry locations and descriptions, with optional tag and author filters. Authentication is optional unless mine=true.",
		Tags:        []string{"Entries"},
	}, s.handleSearchEntries)
}

// === DTOs ===

// SearchEntriesInput holds the search query parameters.
type SearchEntriesInput struct {
	Query  string `query:"q" doc:"Text matched against location and description"`
	Tag    string `query:"tag" doc:"Only entries carrying this tag"`
	UserID int64  `query:"user_id" doc:"Only entries by this user"`
	Mine   bool   `query:"mine" doc:"Only the caller's entries; requires authentication"`
	Limit  int    `query:"limit" doc:"Page size, at most 100 (default 20)"`
	Offset int    `query:"offset" doc:"Results to skip"`
	Sort   string `query:"sort" doc:"relevance (default) or date"`
	Order  string `query:"order" doc:"asc or desc (default)"`
}

// SearchHitResponse is one search result.
type SearchHitResponse struct {
	Entry      EntryResponse     `json:"entry" doc:"Matching entry"`
	Score      float64           `json:"score" doc:"Relevance score"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Matched fragments by field"`
}

// SearchResponse is a page of search results.
type SearchResponse struct {
	Query   string              `json:"query" doc:"The query as searched"`
	Total   uint64              `json:"total" doc:"Total matches across all pages"`
	TookMs  int64               `json:"took_ms" doc:"Search time in milliseconds"`
	Results []SearchHitResponse `json:"results" doc:"Matches on this page"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearchEntries(ctx context.Context, input *SearchEntriesInput) (*SearchOutput, error) {
	userID := input.UserID
	if input.Mine {
		p, err := RequirePrincipal(ctx)
		if err != nil {
			return nil, err
		}
		userID = p.UserID
	}

	result, err := s.services.Search.Search(ctx, service.SearchEntriesRequest{
		Query:  input.Query,
		Tag:    input.Tag,
		UserID: userID,
		Limit:  input.Limit,
		Offset: input.Offset,
		Sort:   input.Sort,
		Order:  input.Order,
	})
	if err != nil {
		return nil, err
	}

	resp := SearchResponse{
		Query:   result.Query,
		Total:   result.Total,
		TookMs:  result.TookMs,
		Results: make([]SearchHitResponse, 0, len(result.Hits)),
	}
	for _, hit := range result.Hits {
		resp.Results = append(resp.Results, SearchHitResponse{
			Entry:      mapEntry(hit.Entry),
			Score:      hit.Score,
			Highlights: hit.Highlights,
		})
	}
	return &SearchOutput{Body: resp}, nil
}
