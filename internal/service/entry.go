package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/validation"
)

// EntryService manages journal entries.
type EntryService struct {
	store     store.Store
	validator *validation.Validator
	indexer   EntryIndexer
	logger    *slog.Logger
}

// NewEntryService creates a new entry service.
func NewEntryService(store store.Store, validator *validation.Validator, logger *slog.Logger) *EntryService {
	return &EntryService{
		store:     store,
		validator: validator,
		indexer:   noopIndexer{},
		logger:    orDefault(logger),
	}
}

// SetIndexer routes entry changes to a search index.
func (s *EntryService) SetIndexer(indexer EntryIndexer) {
	s.indexer = indexer
}

// CreateEntryRequest contains the fields of a new entry. Date must be YYYY-MM-DD.
type CreateEntryRequest struct {
	Location    string `json:"location" validate:"notblank,max=100"`
	Date        string `json:"date" validate:"notblank"`
	Description string `json:"description"`
}

// UpdateEntryRequest contains optional entry changes. Date accepts
// YYYY-MM-DD HH:MM:SS or YYYY-MM-DD.
type UpdateEntryRequest struct {
	Location    *string `json:"location,omitempty" validate:"omitnil,notblank,max=100"`
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
}

// List returns every entry.
func (s *EntryService) List(ctx context.Context) ([]*domain.Entry, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Get returns a single entry.
func (s *EntryService) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, translate(err, MsgEntryNotFound)
	}
	return entry, nil
}

// Create stores a new entry owned by the caller. Nothing is written when
// the date is malformed.
func (s *EntryService) Create(ctx context.Context, p auth.Principal, req CreateEntryRequest) (*domain.Entry, error) {
	if !p.Authenticated {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	date, err := domain.ParseEntryDate(req.Date)
	if err != nil {
		return nil, domainerrors.Validation(MsgInvalidDate)
	}

	entry := &domain.Entry{
		Location:    req.Location,
		Date:        date,
		Description: req.Description,
		UserID:      p.UserID,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		// The token's user may have been removed since it was issued.
		if errors.Is(err, store.ErrInvalidInput) {
			return nil, domainerrors.NotFound(MsgUserNotFound).WithCause(err)
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.logger.Info("Entry created",
		"entry_id", entry.ID,
		"user_id", entry.UserID,
	)
	s.indexer.IndexEntry(ctx, entry.ID)
	return entry, nil
}

// Update applies the provided fields to an entry the caller owns.
func (s *EntryService) Update(ctx context.Context, p auth.Principal, id int64, req UpdateEntryRequest) (*domain.Entry, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(p, entry, s.logger); err != nil {
		return nil, err
	}

	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Date != nil {
		date, err := domain.ParseEntryDateTime(*req.Date)
		if err != nil {
			return nil, domainerrors.Validation(MsgInvalidUpdateDate)
		}
		entry.Date = date
	}

	if err := s.store.UpdateEntry(ctx, entry); err != nil {
		return nil, translate(err, MsgEntryNotFound)
	}

	s.logger.Info("Entry updated", "entry_id", entry.ID)
	s.indexer.IndexEntry(ctx, entry.ID)
	return entry, nil
}

// Delete removes an entry the caller owns along with its photos and tag
// associations.
func (s *EntryService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(p, entry, s.logger); err != nil {
		return err
	}

	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return translate(err, MsgEntryNotFound)
	}

	s.logger.Info("Entry deleted", "entry_id", id)
	s.indexer.RemoveEntry(ctx, id)
	return nil
}
