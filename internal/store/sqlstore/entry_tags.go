package sqlstore

import (
	"context"
	"fmt"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/store"
)

// AddTagToEntry associates a tag with an entry. Adding an existing
// association is a no-op; the boolean reports whether a row was inserted.
func (s *Store) AddTagToEntry(ctx context.Context, entryID, tagID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO entry_tags (entry_id, tag_id)
		VALUES (?, ?)
		ON CONFLICT (entry_id, tag_id) DO NOTHING`),
		entryID, tagID)
	if err != nil {
		return false, translateError(err, store.ErrAlreadyExists)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// RemoveTagFromEntry deletes an association. Removing one that does not
// exist succeeds; the boolean reports whether a row was deleted.
func (s *Store) RemoveTagFromEntry(ctx context.Context, entryID, tagID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`DELETE FROM entry_tags WHERE entry_id = ? AND tag_id = ?`),
		entryID, tagID)
	if err != nil {
		return false, fmt.Errorf("delete entry tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// ListEntryTags returns the tags attached to an entry ordered by name.
func (s *Store) ListEntryTags(ctx context.Context, entryID int64) ([]*domain.Tag, error) {
	var rows []tagRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT t.id, t.name, t.created_at
		FROM tags t
		JOIN entry_tags et ON et.tag_id = t.id
		WHERE et.entry_id = ?
		ORDER BY t.name ASC`), entryID); err != nil {
		return nil, err
	}
	return tagsFromRows(rows)
}

// ListTagEntryIDs returns the IDs of entries carrying a tag, ascending.
func (s *Store) ListTagEntryIDs(ctx context.Context, tagID int64) ([]int64, error) {
	ids := []int64{}
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(`
		SELECT entry_id FROM entry_tags
		WHERE tag_id = ?
		ORDER BY entry_id ASC`), tagID); err != nil {
		return nil, fmt.Errorf("list tag entries: %w", err)
	}
	return ids, nil
}
