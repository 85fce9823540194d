package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/validation"
)

// tagNameRules validates tag names.
const tagNameRules = "notblank,max=50"

// TagService manages global tags and their association with entries.
// Tags have no owner; associating one requires owning the entry.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	indexer   EntryIndexer
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		validator: validator,
		indexer:   noopIndexer{},
		logger:    orDefault(logger),
	}
}

// SetIndexer routes tag changes on entries to a search index.
func (s *TagService) SetIndexer(indexer EntryIndexer) {
	s.indexer = indexer
}

// ListTags returns all tags.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// GetTag returns a tag by ID.
func (s *TagService) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, translate(err, MsgTagNotFound)
	}
	return tag, nil
}

// CreateTag returns the tag with the given name, creating it if needed.
// The boolean reports whether a new tag was created.
func (s *TagService) CreateTag(ctx context.Context, name string) (*domain.Tag, bool, error) {
	name = strings.TrimSpace(name)
	if err := s.validator.Var("name", name, tagNameRules); err != nil {
		return nil, false, err
	}

	tag, created, err := s.store.FindOrCreateTagByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("find or create tag: %w", err)
	}

	if created {
		s.logger.Info("Tag created",
			"tag_id", tag.ID,
			"name", tag.Name,
		)
	}
	return tag, created, nil
}

// RenameTag changes a tag's name.
func (s *TagService) RenameTag(ctx context.Context, id int64, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if err := s.validator.Var("name", name, tagNameRules); err != nil {
		return nil, err
	}

	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag.Name == name {
		return tag, nil
	}

	tag.Name = name
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists(MsgTagNameTaken)
		}
		return nil, translate(err, MsgTagNotFound)
	}

	s.logger.Info("Tag renamed", "tag_id", id, "name", name)
	s.reindexTagged(ctx, id)
	return tag, nil
}

// DeleteTag removes a tag and detaches it from every entry.
func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	// Collected first; the associations are gone after the delete.
	entryIDs, err := s.store.ListTagEntryIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("list tag entries: %w", err)
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return translate(err, MsgTagNotFound)
	}

	s.logger.Info("Tag deleted", "tag_id", id)
	for _, entryID := range entryIDs {
		s.indexer.IndexEntry(ctx, entryID)
	}
	return nil
}

// ListEntryTags returns the tags attached to an entry.
func (s *TagService) ListEntryTags(ctx context.Context, entryID int64) ([]*domain.Tag, error) {
	if _, err := s.store.GetEntry(ctx, entryID); err != nil {
		return nil, translate(err, MsgEntryNotFound)
	}

	tags, err := s.store.ListEntryTags(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("list entry tags: %w", err)
	}
	return tags, nil
}

// AddTagToEntry associates a tag with an entry the caller owns.
// Adding an existing association succeeds without change.
func (s *TagService) AddTagToEntry(ctx context.Context, p auth.Principal, entryID, tagID int64) error {
	if err := s.checkAssociation(ctx, p, entryID, tagID); err != nil {
		return err
	}

	added, err := s.store.AddTagToEntry(ctx, entryID, tagID)
	if err != nil {
		return translate(err, MsgTagNotFound)
	}

	if added {
		s.logger.Info("Tag added to entry",
			"entry_id", entryID,
			"tag_id", tagID,
		)
		s.indexer.IndexEntry(ctx, entryID)
	}
	return nil
}

// RemoveTagFromEntry detaches a tag from an entry the caller owns.
// Removing an absent association succeeds.
func (s *TagService) RemoveTagFromEntry(ctx context.Context, p auth.Principal, entryID, tagID int64) error {
	if err := s.checkAssociation(ctx, p, entryID, tagID); err != nil {
		return err
	}

	removed, err := s.store.RemoveTagFromEntry(ctx, entryID, tagID)
	if err != nil {
		return fmt.Errorf("remove tag from entry: %w", err)
	}

	if removed {
		s.logger.Info("Tag removed from entry",
			"entry_id", entryID,
			"tag_id", tagID,
		)
		s.indexer.IndexEntry(ctx, entryID)
	}
	return nil
}

// checkAssociation verifies both sides exist and the caller owns the entry.
func (s *TagService) checkAssociation(ctx context.Context, p auth.Principal, entryID, tagID int64) error {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return translate(err, MsgEntryNotFound)
	}
	if _, err := s.store.GetTag(ctx, tagID); err != nil {
		return translate(err, MsgTagNotFound)
	}
	return requireOwner(p, entry, s.logger)
}

// reindexTagged refreshes every entry carrying a tag.
func (s *TagService) reindexTagged(ctx context.Context, tagID int64) {
	entryIDs, err := s.store.ListTagEntryIDs(ctx, tagID)
	if err != nil {
		s.logger.Warn("failed to list tagged entries for reindex", "tag_id", tagID, "error", err)
		return
	}
	for _, entryID := range entryIDs {
		s.indexer.IndexEntry(ctx, entryID)
	}
}
