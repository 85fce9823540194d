package sqlstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/store"
)

func TestCreateTag_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTag(ctx, &domain.Tag{Name: "Travel"}))
	err := s.CreateTag(ctx, &domain.Tag{Name: "Travel"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestFindOrCreateTagByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag, created, err := s.FindOrCreateTagByName(ctx, "Travel")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, tag.ID)

	again, created, err := s.FindOrCreateTagByName(ctx, "Travel")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, tag.ID, again.ID)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestFindOrCreateTagByName_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	ids := make([]int64, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tag, _, err := s.FindOrCreateTagByName(ctx, "Nature")
			if assert.NoError(t, err) {
				ids[i] = tag.ID
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestUpdateTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	travel := &domain.Tag{Name: "Travel"}
	nature := &domain.Tag{Name: "Nature"}
	require.NoError(t, s.CreateTag(ctx, travel))
	require.NoError(t, s.CreateTag(ctx, nature))

	travel.Name = "Trips"
	require.NoError(t, s.UpdateTag(ctx, travel))
	got, err := s.GetTagByName(ctx, "Trips")
	require.NoError(t, err)
	assert.Equal(t, travel.ID, got.ID)

	travel.Name = "Nature"
	assert.ErrorIs(t, s.UpdateTag(ctx, travel), store.ErrAlreadyExists)
	assert.ErrorIs(t, s.UpdateTag(ctx, &domain.Tag{ID: 999, Name: "x"}), store.ErrTagNotFound)
}

func TestEntryTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "john_doe")
	e := createTestEntry(t, s, u.ID, "New York, NY")
	tag := &domain.Tag{Name: "Travel"}
	require.NoError(t, s.CreateTag(ctx, tag))

	added, err := s.AddTagToEntry(ctx, e.ID, tag.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddTagToEntry(ctx, e.ID, tag.ID)
	require.NoError(t, err)
	assert.False(t, added)

	tags, err := s.ListEntryTags(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Travel", tags[0].Name)

	removed, err := s.RemoveTagFromEntry(ctx, e.ID, tag.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.RemoveTagFromEntry(ctx, e.ID, tag.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.AddTagToEntry(ctx, e.ID, 999)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestDeleteTag_RemovesAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "john_doe")
	e := createTestEntry(t, s, u.ID, "New York, NY")
	tag := &domain.Tag{Name: "Travel"}
	require.NoError(t, s.CreateTag(ctx, tag))
	_, err := s.AddTagToEntry(ctx, e.ID, tag.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTag(ctx, tag.ID))

	tags, err := s.ListEntryTags(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.ErrorIs(t, s.DeleteTag(ctx, tag.ID), store.ErrTagNotFound)
}

func TestListTagEntryIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "john_doe")
	e1 := createTestEntry(t, s, u.ID, "New York, NY")
	e2 := createTestEntry(t, s, u.ID, "San Francisco, CA")
	tag := &domain.Tag{Name: "Travel"}
	require.NoError(t, s.CreateTag(ctx, tag))

	ids, err := s.ListTagEntryIDs(ctx, tag.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = s.AddTagToEntry(ctx, e2.ID, tag.ID)
	require.NoError(t, err)
	_, err = s.AddTagToEntry(ctx, e1.ID, tag.ID)
	require.NoError(t, err)

	ids, err = s.ListTagEntryIDs(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{e1.ID, e2.ID}, ids)
}
