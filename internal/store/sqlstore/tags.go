package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
const tagColumns = `id, name, created_at`

type tagRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

func (r *tagRow) toDomain() (*domain.Tag, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse tag created_at: %w", err)
	}
	return &domain.Tag{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: createdAt,
	}, nil
}

func tagsFromRows(rows []tagRow) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists on duplicate name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	err := s.db.GetContext(ctx, &t.ID, s.db.Rebind(`
		INSERT INTO tags (name, created_at)
		VALUES (?, ?)
		RETURNING id`),
		t.Name,
		formatTime(t.CreatedAt),
	)
	return translateError(err, store.ErrTagNameTaken)
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	var row tagRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT `+tagColumns+` FROM tags WHERE id = ?`), id)
	if err != nil {
		return nil, lookupError(err, store.ErrTagNotFound)
	}
	return row.toDomain()
}

// GetTagByName retrieves a tag by exact name.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	var row tagRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT `+tagColumns+` FROM tags WHERE name = ?`), name)
	if err != nil {
		return nil, lookupError(err, store.ErrTagNotFound)
	}
	return row.toDomain()
}

// FindOrCreateTagByName returns the tag with the given name, creating it if
// needed. The boolean reports whether a new row was inserted. Concurrent
// callers racing on the same name all observe the single winning row.
func (s *Store) FindOrCreateTagByName(ctx context.Context, name string) (*domain.Tag, bool, error) {
	now := time.Now()

	var id int64
	err := s.db.GetContext(ctx, &id, s.db.Rebind(`
		INSERT INTO tags (name, created_at)
		VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`),
		name,
		formatTime(now),
	)
	switch {
	case err == nil:
		return &domain.Tag{ID: id, Name: name, CreatedAt: now.UTC()}, true, nil
	case errors.Is(err, sql.ErrNoRows):
		t, err := s.GetTagByName(ctx, name)
		if err != nil {
			return nil, false, err
		}
		return t, false, nil
	default:
		return nil, false, translateError(err, store.ErrTagNameTaken)
	}
}

// ListTags returns all tags ordered by ID.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	var rows []tagRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+tagColumns+` FROM tags ORDER BY id ASC`); err != nil {
		return nil, err
	}
	return tagsFromRows(rows)
}

// UpdateTag renames a tag.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE tags SET name = ? WHERE id = ?`), t.Name, t.ID)
	if err != nil {
		return translateError(err, store.ErrTagNameTaken)
	}
	return requireAffected(res, store.ErrTagNotFound)
}

// DeleteTag removes a tag and its entry associations in one transaction.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM entry_tags WHERE tag_id = ?`), id); err != nil {
			return fmt.Errorf("delete tag associations: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM tags WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return requireAffected(res, store.ErrTagNotFound)
	})
}
