package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/search"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/validation"
)

// EntryIndexer keeps a search index in step with entry changes.
// Failures are logged, never returned; the database stays the source of truth.
type EntryIndexer interface {
	IndexEntry(ctx context.Context, entryID int64)
	RemoveEntry(ctx context.Context, entryID int64)
}

type noopIndexer struct{}

func (noopIndexer) IndexEntry(context.Context, int64)  {}
func (noopIndexer) RemoveEntry(context.Context, int64) {}

// SearchService answers full-text entry queries and maintains the index.
type SearchService struct {
	index     *search.SearchIndex
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store store.Store, validator *validation.Validator, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:     index,
		store:     store,
		validator: validator,
		logger:    orDefault(logger),
	}
}

// SearchEntriesRequest describes an entry search. Zero values fall back to
// the index defaults.
type SearchEntriesRequest struct {
	Query  string `json:"q" validate:"max=200"`
	Tag    string `json:"tag" validate:"max=50"`
	UserID int64  `json:"user_id" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
	Offset int    `json:"offset" validate:"gte=0"`
	Sort   string `json:"sort" validate:"omitempty,oneof=relevance date"`
	Order  string `json:"order" validate:"omitempty,oneof=asc desc"`
}

// EntryHit is a matching entry with its relevance.
type EntryHit struct {
	Entry      *domain.Entry
	Score      float64
	Highlights map[string]string
}

// EntrySearchResult holds one page of matches.
type EntrySearchResult struct {
	Query  string
	Total  uint64
	TookMs int64
	Hits   []EntryHit
}

// Search runs a full-text query and loads the matching entries.
// Hits whose entry has since been deleted are dropped from the page.
func (s *SearchService) Search(ctx context.Context, req SearchEntriesRequest) (*EntrySearchResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	params := search.DefaultSearchParams()
	params.Query = strings.TrimSpace(req.Query)
	params.Tag = req.Tag
	params.UserID = req.UserID
	params.Offset = req.Offset
	if req.Limit > 0 {
		params.Limit = req.Limit
	}
	if req.Sort != "" {
		params.SortBy = req.Sort
	}
	if req.Order != "" {
		params.SortOrder = req.Order
	}

	found, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}

	result := &EntrySearchResult{
		Query:  found.Query,
		Total:  found.Total,
		TookMs: found.TookMs,
		Hits:   make([]EntryHit, 0, len(found.Hits)),
	}
	for _, hit := range found.Hits {
		entry, err := s.store.GetEntry(ctx, hit.EntryID)
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("search hit for missing entry", "entry_id", hit.EntryID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load entry %d: %w", hit.EntryID, err)
		}
		result.Hits = append(result.Hits, EntryHit{
			Entry:      entry,
			Score:      hit.Score,
			Highlights: hit.Highlights,
		})
	}

	return result, nil
}

// IndexEntry indexes the current state of an entry, or removes it from the
// index when it no longer exists.
func (s *SearchService) IndexEntry(ctx context.Context, entryID int64) {
	doc, err := s.buildDocument(ctx, entryID)
	if errors.Is(err, store.ErrNotFound) {
		s.RemoveEntry(ctx, entryID)
		return
	}
	if err != nil {
		s.logger.Warn("failed to build search document", "entry_id", entryID, "error", err)
		return
	}

	if err := s.index.IndexDocument(doc); err != nil {
		s.logger.Warn("failed to index entry", "entry_id", entryID, "error", err)
		return
	}
	s.logger.Debug("indexed entry", "entry_id", entryID)
}

// RemoveEntry drops an entry from the index.
func (s *SearchService) RemoveEntry(_ context.Context, entryID int64) {
	if err := s.index.DeleteDocument(search.DocumentID(entryID)); err != nil {
		s.logger.Warn("failed to remove entry from index", "entry_id", entryID, "error", err)
	}
}

// RebuildIndex clears the index and indexes every entry.
func (s *SearchService) RebuildIndex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	docs := make([]*search.EntryDocument, 0, len(entries))
	for _, e := range entries {
		tags, err := s.store.ListEntryTags(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("list tags for entry %d: %w", e.ID, err)
		}
		docs = append(docs, search.EntryToDocument(e, tags))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index entries: %w", err)
	}

	s.logger.Info("search index rebuilt", "entries", len(docs))
	return nil
}

func (s *SearchService) buildDocument(ctx context.Context, entryID int64) (*search.EntryDocument, error) {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	tags, err := s.store.ListEntryTags(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return search.EntryToDocument(entry, tags), nil
}
