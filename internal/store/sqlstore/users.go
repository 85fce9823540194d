package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/store"
)

const userColumns = `id, username, email, password_hash, created_at`

type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

func (r *userRow) toDomain() (*domain.User, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse user created_at: %w", err)
	}
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    createdAt,
	}, nil
}

// CreateUser inserts a user and assigns its generated ID.
// Returns store.ErrAlreadyExists when the username or email is taken.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	query := s.db.Rebind(`
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	err := s.db.GetContext(ctx, &u.ID, query,
		u.Username,
		u.Email,
		u.PasswordHash,
		formatTime(u.CreatedAt),
	)
	return translateError(err, store.ErrUsernameTaken)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if err != nil {
		return nil, lookupError(err, store.ErrUserNotFound)
	}
	return row.toDomain()
}

// GetUserByUsername retrieves a user by exact username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE username = ?`), username)
	if err != nil {
		return nil, lookupError(err, store.ErrUserNotFound)
	}
	return row.toDomain()
}

// UpdateUser persists username, email and password hash.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
			UPDATE users SET username = ?, email = ?, password_hash = ?
			WHERE id = ?`),
			u.Username, u.Email, u.PasswordHash, u.ID)
		if err != nil {
			return translateError(err, store.ErrUsernameTaken)
		}
		return requireAffected(res, store.ErrUserNotFound)
	})
}
