package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/store"
)

const entryColumns = `id, location, date, description, user_id, created_at`

type entryRow struct {
	ID          int64          `db:"id"`
	Location    string         `db:"location"`
	Date        string         `db:"date"`
	Description sql.NullString `db:"description"`
	UserID      int64          `db:"user_id"`
	CreatedAt   string         `db:"created_at"`
}

func (r *entryRow) toDomain() (*domain.Entry, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return nil, fmt.Errorf("parse entry date: %w", err)
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse entry created_at: %w", err)
	}
	return &domain.Entry{
		ID:          r.ID,
		Location:    r.Location,
		Date:        date,
		Description: r.Description.String,
		UserID:      r.UserID,
		CreatedAt:   createdAt,
	}, nil
}

// CreateEntry inserts an entry and assigns its generated ID.
// Returns store.ErrInvalidInput when the owning user does not exist.
func (s *Store) CreateEntry(ctx context.Context, e *domain.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &e.ID, tx.Rebind(`
			INSERT INTO entries (location, date, description, user_id, created_at)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id`),
			e.Location,
			formatTime(e.Date),
			nullString(e.Description),
			e.UserID,
			formatTime(e.CreatedAt),
		)
		return translateError(err, store.ErrAlreadyExists)
	})
}

// GetEntry retrieves an entry by ID.
func (s *Store) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	var row entryRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT `+entryColumns+` FROM entries WHERE id = ?`), id)
	if err != nil {
		return nil, lookupError(err, store.ErrEntryNotFound)
	}
	return row.toDomain()
}

// ListEntries returns every entry in insertion order.
func (s *Store) ListEntries(ctx context.Context) ([]*domain.Entry, error) {
	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+entryColumns+` FROM entries ORDER BY id ASC`); err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// UpdateEntry persists location, date and description.
func (s *Store) UpdateEntry(ctx context.Context, e *domain.Entry) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
			UPDATE entries SET location = ?, date = ?, description = ?
			WHERE id = ?`),
			e.Location,
			formatTime(e.Date),
			nullString(e.Description),
			e.ID,
		)
		if err != nil {
			return translateError(err, store.ErrAlreadyExists)
		}
		return requireAffected(res, store.ErrEntryNotFound)
	})
}

// DeleteEntry removes an entry together with its photos and tag
// associations in one transaction.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM entry_tags WHERE entry_id = ?`), id); err != nil {
			return fmt.Errorf("delete entry tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM photos WHERE entry_id = ?`), id); err != nil {
			return fmt.Errorf("delete entry photos: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM entries WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		return requireAffected(res, store.ErrEntryNotFound)
	})
}
