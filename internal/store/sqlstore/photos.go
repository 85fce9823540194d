package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/store"
)

const photoColumns = `id, url, entry_id, uploaded_at`

type photoRow struct {
	ID         int64  `db:"id"`
	URL        string `db:"url"`
	EntryID    int64  `db:"entry_id"`
	UploadedAt string `db:"uploaded_at"`
}

func (r *photoRow) toDomain() (*domain.Photo, error) {
	uploadedAt, err := parseTime(r.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("parse photo uploaded_at: %w", err)
	}
	return &domain.Photo{
		ID:         r.ID,
		URL:        r.URL,
		EntryID:    r.EntryID,
		UploadedAt: uploadedAt,
	}, nil
}

// CreatePhoto inserts a photo inside an explicit transaction. Any failure,
// including at commit, rolls the transaction back and is returned wrapped.
func (s *Store) CreatePhoto(ctx context.Context, p *domain.Photo) error {
	if p.UploadedAt.IsZero() {
		p.UploadedAt = time.Now()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	err = tx.GetContext(ctx, &p.ID, tx.Rebind(`
		INSERT INTO photos (url, entry_id, uploaded_at)
		VALUES (?, ?, ?)
		RETURNING id`),
		p.URL,
		p.EntryID,
		formatTime(p.UploadedAt),
	)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", "op", "create_photo", "error", rbErr)
		}
		return translateError(err, store.ErrAlreadyExists)
	}

	if err := tx.Commit(); err != nil {
		// Commit may fail without finishing the rollback on some drivers.
		_ = tx.Rollback()
		p.ID = 0
		return fmt.Errorf("commit photo: %w", err)
	}
	return nil
}

// GetPhoto retrieves a photo by ID, scoped to its entry.
func (s *Store) GetPhoto(ctx context.Context, entryID, photoID int64) (*domain.Photo, error) {
	var row photoRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT `+photoColumns+` FROM photos WHERE id = ? AND entry_id = ?`),
		photoID, entryID)
	if err != nil {
		return nil, lookupError(err, store.ErrPhotoNotFound)
	}
	return row.toDomain()
}

// ListPhotos returns the photos attached to an entry in upload order.
func (s *Store) ListPhotos(ctx context.Context, entryID int64) ([]*domain.Photo, error) {
	var rows []photoRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		`SELECT `+photoColumns+` FROM photos WHERE entry_id = ? ORDER BY id ASC`),
		entryID); err != nil {
		return nil, err
	}

	photos := make([]*domain.Photo, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// DeletePhoto removes a photo belonging to the given entry.
func (s *Store) DeletePhoto(ctx context.Context, entryID, photoID int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`DELETE FROM photos WHERE id = ? AND entry_id = ?`), photoID, entryID)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return requireAffected(res, store.ErrPhotoNotFound)
}
