package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchResults(t *testing.T, ts *testServer, path string, args ...any) SearchResponse {
	t.Helper()
	resp := ts.api.Get(path, args...)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body SearchResponse
	decode(t, resp.Body.Bytes(), &body)
	return body
}

func resultIDs(body SearchResponse) []int64 {
	ids := make([]int64, 0, len(body.Results))
	for _, r := range body.Results {
		ids = append(ids, r.Entry.ID)
	}
	return ids
}

func TestSearchEntries_Anonymous(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	ny := ts.createEntry(t, token, "New York, NY", "2024-10-15")
	ts.createEntry(t, token, "San Francisco, CA", "2024-09-20")

	body := searchResults(t, ts, "/api/entries/search?q=york")

	assert.Equal(t, "york", body.Query)
	assert.Equal(t, []int64{ny}, resultIDs(body))
	assert.Equal(t, "New York, NY", body.Results[0].Entry.Location)
	assert.Equal(t, "2024-10-15 00:00:00", body.Results[0].Entry.Date)
}

func TestSearchEntries_TagFilter(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	ts.createEntry(t, token, "New York, NY", "2024-10-15")
	sf := ts.createEntry(t, token, "San Francisco, CA", "2024-09-20")
	tagID := ts.createTag(t, token, "Nature")

	resp := ts.api.Post(entryPath(sf, "tags"), bearer(token), map[string]any{"tag_id": tagID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := searchResults(t, ts, "/api/entries/search?tag=nature")
	assert.Equal(t, []int64{sf}, resultIDs(body))
}

func TestSearchEntries_Mine(t *testing.T) {
	ts := setupTestServer(t)
	john := ts.registerAndLogin(t, "john_doe")
	jane := ts.registerAndLogin(t, "jane_doe")
	ts.createEntry(t, john, "Paris, France", "2024-10-15")
	janes := ts.createEntry(t, jane, "Paris, Texas", "2024-10-16")

	body := searchResults(t, ts, "/api/entries/search?q=paris&mine=true", bearer(jane))
	assert.Equal(t, []int64{janes}, resultIDs(body))

	resp := ts.api.Get("/api/entries/search?q=paris&mine=true")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSearchEntries_SortByDate(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	older := ts.createEntry(t, token, "Rome, Italy", "2023-05-01")
	newer := ts.createEntry(t, token, "Oslo, Norway", "2024-05-01")

	body := searchResults(t, ts, "/api/entries/search?sort=date")
	assert.Equal(t, []int64{newer, older}, resultIDs(body))
	assert.Equal(t, uint64(2), body.Total)

	body = searchResults(t, ts, "/api/entries/search?sort=date&order=asc&limit=1")
	assert.Equal(t, []int64{older}, resultIDs(body))
	assert.Equal(t, uint64(2), body.Total)
}

func TestSearchEntries_InvalidParams(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/entries/search?limit=500")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", string(errorBody(t, resp.Body.Bytes()).Code))

	resp = ts.api.Get("/api/entries/search?sort=popularity")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSearchEntries_DeletedEntryDisappears(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "john_doe")
	id := ts.createEntry(t, token, "Kyoto, Japan", "2024-04-01")

	resp := ts.api.Delete(entryPath(id), bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	body := searchResults(t, ts, "/api/entries/search?q=kyoto")
	assert.Empty(t, body.Results)
}
