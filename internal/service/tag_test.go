package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/traveljournal/journal-server/internal/errors"
)

func TestTagService_CreateTag(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	tag, created, err := env.tags.CreateTag(ctx, "Travel")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Travel", tag.Name)

	again, created, err := env.tags.CreateTag(ctx, "Travel")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, tag.ID, again.ID)

	tags, err := env.tags.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagService_CreateTag_Validation(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, _, err := env.tags.CreateTag(ctx, "")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, _, err = env.tags.CreateTag(ctx, "   ")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	_, _, err = env.tags.CreateTag(ctx, string(long))
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestTagService_RenameTag(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	travel, _, err := env.tags.CreateTag(ctx, "Travel")
	require.NoError(t, err)
	_, _, err = env.tags.CreateTag(ctx, "Nature")
	require.NoError(t, err)

	renamed, err := env.tags.RenameTag(ctx, travel.ID, "Trips")
	require.NoError(t, err)
	assert.Equal(t, "Trips", renamed.Name)

	_, err = env.tags.RenameTag(ctx, travel.ID, "Nature")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))

	_, err = env.tags.RenameTag(ctx, 999, "Other")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestTagService_EntryAssociations(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	p := env.registerUser(t, "john_doe")
	entry := env.createEntry(t, p, "New York, NY")
	tag, _, err := env.tags.CreateTag(ctx, "Travel")
	require.NoError(t, err)

	require.NoError(t, env.tags.AddTagToEntry(ctx, p, entry.ID, tag.ID))
	require.NoError(t, env.tags.AddTagToEntry(ctx, p, entry.ID, tag.ID))

	tags, err := env.tags.ListEntryTags(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Travel", tags[0].Name)

	require.NoError(t, env.tags.RemoveTagFromEntry(ctx, p, entry.ID, tag.ID))
	require.NoError(t, env.tags.RemoveTagFromEntry(ctx, p, entry.ID, tag.ID))

	tags, err = env.tags.ListEntryTags(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagService_EntryAssociations_NotFound(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	p := env.registerUser(t, "john_doe")
	entry := env.createEntry(t, p, "New York, NY")
	tag, _, err := env.tags.CreateTag(ctx, "Travel")
	require.NoError(t, err)

	err = env.tags.AddTagToEntry(ctx, p, 999, tag.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	assert.Equal(t, MsgEntryNotFound, messageOf(t, err))

	err = env.tags.AddTagToEntry(ctx, p, entry.ID, 999)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	assert.Equal(t, MsgTagNotFound, messageOf(t, err))

	err = env.tags.RemoveTagFromEntry(ctx, p, entry.ID, 999)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestTagService_EntryAssociations_Ownership(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	owner := env.registerUser(t, "john_doe")
	other := env.registerUser(t, "jane_doe")
	entry := env.createEntry(t, owner, "New York, NY")
	tag, _, err := env.tags.CreateTag(ctx, "Travel")
	require.NoError(t, err)

	err = env.tags.AddTagToEntry(ctx, other, entry.ID, tag.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))
}

func TestTagService_DeleteTag(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()
	p := env.registerUser(t, "john_doe")
	entry := env.createEntry(t, p, "New York, NY")
	tag, _, err := env.tags.CreateTag(ctx, "Travel")
	require.NoError(t, err)
	require.NoError(t, env.tags.AddTagToEntry(ctx, p, entry.ID, tag.ID))

	require.NoError(t, env.tags.DeleteTag(ctx, tag.ID))

	tags, err := env.tags.ListEntryTags(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	err = env.tags.DeleteTag(ctx, tag.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
