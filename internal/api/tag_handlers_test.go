package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag_ReturnsExisting(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")

	resp := ts.api.Post("/api/tags", bearer(token), map[string]any{"name": "Travel"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created TagRefResponse
	decode(t, resp.Body.Bytes(), &created)

	resp = ts.api.Post("/api/tags", bearer(token), map[string]any{"name": "Travel"})
	require.Equal(t, http.StatusOK, resp.Code)
	var existing TagRefResponse
	decode(t, resp.Body.Bytes(), &existing)
	assert.Equal(t, created.ID, existing.ID)

	resp = ts.api.Get("/api/tags", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	var tags []TagResponse
	decode(t, resp.Body.Bytes(), &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Travel", tags[0].Name)
	assert.False(t, tags[0].CreatedAt.IsZero())
}

func TestCreateTag_MissingName(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")

	resp := ts.api.Post("/api/tags", bearer(token), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRenameTag(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	travel := ts.createTag(t, token, "Travel")
	ts.createTag(t, token, "Nature")

	resp := ts.api.Put(fmt.Sprintf("/api/tags/%d", travel), bearer(token), map[string]any{"name": "Trips"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var tag TagResponse
	decode(t, resp.Body.Bytes(), &tag)
	assert.Equal(t, "Trips", tag.Name)

	resp = ts.api.Put(fmt.Sprintf("/api/tags/%d", travel), bearer(token), map[string]any{"name": "Nature"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Put("/api/tags/999", bearer(token), map[string]any{"name": "Other"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestEntryTags_Idempotent(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	entryID := ts.createEntry(t, token, "New York, NY", "2024-10-15")
	tagID := ts.createTag(t, token, "Travel")

	for range 2 {
		resp := ts.api.Post(entryPath(entryID, "tags"), bearer(token), map[string]any{"tag_id": tagID})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		var msg MessageResponse
		decode(t, resp.Body.Bytes(), &msg)
		assert.Equal(t, "Tag added successfully", msg.Message)
	}

	resp := ts.api.Get(entryPath(entryID, "tags"), bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	var tags []TagResponse
	decode(t, resp.Body.Bytes(), &tags)
	assert.Len(t, tags, 1)

	for range 2 {
		resp := ts.api.Delete(entryPath(entryID, "tags", tagID), bearer(token))
		assert.Equal(t, http.StatusNoContent, resp.Code)
		assert.Empty(t, resp.Body.String())
	}
}

func TestEntryTags_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	entryID := ts.createEntry(t, token, "New York, NY", "2024-10-15")
	tagID := ts.createTag(t, token, "Travel")

	resp := ts.api.Post(entryPath(999, "tags"), bearer(token), map[string]any{"tag_id": tagID})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Post(entryPath(entryID, "tags"), bearer(token), map[string]any{"tag_id": 999})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete(entryPath(entryID, "tags", 999), bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteTag(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	entryID := ts.createEntry(t, token, "New York, NY", "2024-10-15")
	tagID := ts.createTag(t, token, "Travel")

	resp := ts.api.Post(entryPath(entryID, "tags"), bearer(token), map[string]any{"tag_id": tagID})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete(fmt.Sprintf("/api/tags/%d", tagID), bearer(token))
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Delete(fmt.Sprintf("/api/tags/%d", tagID), bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get(entryPath(entryID, "tags"), bearer(token))
	var tags []TagResponse
	decode(t, resp.Body.Bytes(), &tags)
	assert.Empty(t, tags)
}
