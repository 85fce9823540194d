package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/store"
)

func TestCreateEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "john_doe")

	e := &domain.Entry{
		Location:    "New York, NY",
		Date:        time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC),
		Description: "Visited Central Park.",
		UserID:      u.ID,
	}
	require.NoError(t, s.CreateEntry(ctx, e))
	assert.NotZero(t, e.ID)

	got, err := s.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "New York, NY", got.Location)
	assert.Equal(t, "Visited Central Park.", got.Description)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, "2024-10-15 00:00:00", domain.FormatDateTime(got.Date))
}

func TestCreateEntry_UnknownUser(t *testing.T) {
	s := newTestStore(t)

	e := &domain.Entry{Location: "Nowhere", Date: time.Now(), UserID: 42}
	err := s.CreateEntry(context.Background(), e)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestCreateEntry_EmptyDescriptionIsNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "john_doe")
	e := createTestEntry(t, s, u.ID, "Paris")

	var isNull bool
	require.NoError(t, s.db.GetContext(ctx, &isNull,
		"SELECT description IS NULL FROM entries WHERE id = ?", e.ID))
	assert.True(t, isNull)
}

func TestListEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries, err := s.ListEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	u := createTestUser(t, s, "john_doe")
	first := createTestEntry(t, s, u.ID, "New York, NY")
	second := createTestEntry(t, s, u.ID, "San Francisco, CA")

	entries, err = s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
}

func TestUpdateEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "john_doe")
	e := createTestEntry(t, s, u.ID, "New York, NY")

	e.Location = "Boston, MA"
	e.Date = time.Date(2024, 11, 1, 9, 30, 0, 0, time.UTC)
	e.Description = "Harbor walk."
	require.NoError(t, s.UpdateEntry(ctx, e))

	got, err := s.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boston, MA", got.Location)
	assert.Equal(t, "Harbor walk.", got.Description)
	assert.Equal(t, "2024-11-01 09:30:00", domain.FormatDateTime(got.Date))

	assert.ErrorIs(t, s.UpdateEntry(ctx, &domain.Entry{ID: 999, Date: time.Now()}), store.ErrEntryNotFound)
}

func TestDeleteEntry_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s, "john_doe")
	e := createTestEntry(t, s, u.ID, "New York, NY")

	p := &domain.Photo{URL: "https://example.com/photo1.jpg", EntryID: e.ID}
	require.NoError(t, s.CreatePhoto(ctx, p))
	tag := &domain.Tag{Name: "Travel"}
	require.NoError(t, s.CreateTag(ctx, tag))
	_, err := s.AddTagToEntry(ctx, e.ID, tag.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(ctx, e.ID))

	_, err = s.GetEntry(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetPhoto(ctx, e.ID, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var n int
	require.NoError(t, s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM entry_tags"))
	assert.Zero(t, n)

	// The tag itself survives.
	_, err = s.GetTag(ctx, tag.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.DeleteEntry(ctx, e.ID), store.ErrEntryNotFound)
}
