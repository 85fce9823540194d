// Package store defines the persistence interface for the travel journal.
package store

import (
	"context"

	"github.com/traveljournal/journal-server/internal/domain"
)

// Store defines every persistence operation the services rely on.
// Implementations assign generated IDs back onto the passed entities.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Entries
	CreateEntry(ctx context.Context, entry *domain.Entry) error
	GetEntry(ctx context.Context, id int64) (*domain.Entry, error)
	ListEntries(ctx context.Context) ([]*domain.Entry, error)
	UpdateEntry(ctx context.Context, entry *domain.Entry) error
	DeleteEntry(ctx context.Context, id int64) error

	// Photos
	CreatePhoto(ctx context.Context, photo *domain.Photo) error
	GetPhoto(ctx context.Context, entryID, photoID int64) (*domain.Photo, error)
	ListPhotos(ctx context.Context, entryID int64) ([]*domain.Photo, error)
	DeletePhoto(ctx context.Context, entryID, photoID int64) error

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	FindOrCreateTagByName(ctx context.Context, name string) (*domain.Tag, bool, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, id int64) error

	// Entry tags
	AddTagToEntry(ctx context.Context, entryID, tagID int64) (bool, error)
	RemoveTagFromEntry(ctx context.Context, entryID, tagID int64) (bool, error)
	ListEntryTags(ctx context.Context, entryID int64) ([]*domain.Tag, error)
	ListTagEntryIDs(ctx context.Context, tagID int64) ([]int64, error)
}
