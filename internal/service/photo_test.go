package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/validation"
)

// failingPhotoStore rejects every photo insert.
type failingPhotoStore struct {
	store.Store
	err error
}

func (f *failingPhotoStore) CreatePhoto(context.Context, *domain.Photo) error {
	return f.err
}

func TestPhotoService_CreateAndList(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	p := env.registerUser(t, "john_doe")
	entry := env.createEntry(t, p, "New York, NY")

	photo, err := env.photos.Create(ctx, p, entry.ID, CreatePhotoRequest{URL: "https://example.com/photo1.jpg"})
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)

	photos, err := env.photos.List(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "https://example.com/photo1.jpg", photos[0].URL)
}

func TestPhotoService_Create_Validation(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	p := env.registerUser(t, "john_doe")
	entry := env.createEntry(t, p, "New York, NY")

	_, err := env.photos.Create(ctx, p, entry.ID, CreatePhotoRequest{})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.Equal(t, MsgPhotoURLRequired, err.Error())

	_, err = env.photos.Create(ctx, p, 999, CreatePhotoRequest{URL: "https://example.com/x.jpg"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	_, err = env.photos.List(ctx, 999)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestPhotoService_Create_Ownership(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	owner := env.registerUser(t, "john_doe")
	other := env.registerUser(t, "jane_doe")
	entry := env.createEntry(t, owner, "New York, NY")

	_, err := env.photos.Create(ctx, other, entry.ID, CreatePhotoRequest{URL: "https://example.com/x.jpg"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))
}

func TestPhotoService_Create_StoreFailure(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	p := env.registerUser(t, "john_doe")
	entry := env.createEntry(t, p, "New York, NY")

	cause := errors.New("disk full")
	failing := &failingPhotoStore{Store: env.store, err: cause}

	exposed := NewPhotoService(failing, validation.New(), nil, true)
	_, err := exposed.Create(ctx, p, entry.ID, CreatePhotoRequest{URL: "https://example.com/x.jpg"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInternal))
	assert.ErrorIs(t, err, cause)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Failed to upload photo: disk full", domainErr.Message)

	hidden := NewPhotoService(failing, validation.New(), nil, false)
	_, err = hidden.Create(ctx, p, entry.ID, CreatePhotoRequest{URL: "https://example.com/x.jpg"})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, MsgPhotoUploadFailed, domainErr.Message)

	photos, err := env.photos.List(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestPhotoService_Delete(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	p := env.registerUser(t, "john_doe")
	entry := env.createEntry(t, p, "New York, NY")
	second := env.createEntry(t, p, "Boston, MA")

	photo, err := env.photos.Create(ctx, p, entry.ID, CreatePhotoRequest{URL: "https://example.com/photo1.jpg"})
	require.NoError(t, err)

	// A photo is only addressable under its own entry.
	err = env.photos.Delete(ctx, p, second.ID, photo.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	require.NoError(t, env.photos.Delete(ctx, p, entry.ID, photo.ID))

	_, err = env.photos.Get(ctx, entry.ID, photo.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	err = env.photos.Delete(ctx, p, entry.ID, photo.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
