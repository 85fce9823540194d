package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/traveljournal/journal-server/internal/config"
	"github.com/traveljournal/journal-server/internal/logger"
	"github.com/traveljournal/journal-server/internal/search"
	"github.com/traveljournal/journal-server/internal/service"
	"github.com/traveljournal/journal-server/internal/validation"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex

	// Created reports that the index started empty and needs a backfill.
	Created bool
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex opens the on-disk entry index under the data directory.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, created, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}

	return &SearchIndexHandle{SearchIndex: index, Created: created}, nil
}

// ProvideSearchService provides the entry search service, backfilling a
// freshly created index from the database.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(indexHandle.SearchIndex, storeHandle.Store, validator, log.Logger)

	if indexHandle.Created {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.RebuildIndex(ctx); err != nil {
			return nil, fmt.Errorf("backfill search index: %w", err)
		}
	}

	return svc, nil
}
