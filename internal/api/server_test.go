package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/logger"
	"github.com/traveljournal/journal-server/internal/search"
	"github.com/traveljournal/journal-server/internal/service"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/store/sqlstore"
	"github.com/traveljournal/journal-server/internal/validation"
)

const testSecret = "api-test-secret-value"

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api    humatest.TestAPI
	store  store.Store
	issuer auth.Issuer
}

// setupTestServer creates a server backed by a fresh SQLite database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithLimiter(t, nil)
}

func setupTestServerWithLimiter(t *testing.T, limiter *RateLimiter) *testServer {
	t.Helper()
	return setupTestServerWithOptions(t, limiter, Options{Version: "test"})
}

func setupTestServerWithOptions(t *testing.T, limiter *RateLimiter, opts Options) *testServer {
	t.Helper()

	if limiter != nil {
		t.Cleanup(limiter.Stop)
	}

	log := logger.Discard()
	st, err := sqlstore.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), log.Logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	issuer, err := auth.NewJWTIssuer(testSecret, 15*time.Minute)
	require.NoError(t, err)

	index, _, err := search.NewSearchIndex(search.Options{Logger: log.Logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	v := validation.New()
	services := &Services{
		Auth:   service.NewAuthService(st, issuer, v, log.Logger),
		User:   service.NewUserService(st, v, log.Logger),
		Entry:  service.NewEntryService(st, v, log.Logger),
		Photo:  service.NewPhotoService(st, v, log.Logger, true),
		Tag:    service.NewTagService(st, v, log.Logger),
		Search: service.NewSearchService(index, st, v, log.Logger),
	}
	services.Entry.SetIndexer(services.Search)
	services.Tag.SetIndexer(services.Search)

	s := NewServer(st, services, limiter, opts, log)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		store:  st,
		issuer: issuer,
	}
}

// bearer formats an Authorization header argument for humatest.
func bearer(token string) string {
	return "Authorization: Bearer " + token
}

// register creates a user through the API.
func (ts *testServer) register(t *testing.T, username, password string) {
	t.Helper()
	resp := ts.api.Post("/api/users/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())
}

// login returns an access token for the user.
func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := ts.api.Post("/api/users/login", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var body LoginResponse
	decode(t, resp.Body.Bytes(), &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

// registerAndLogin creates a user and returns its token.
func (ts *testServer) registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	ts.register(t, username, "password123")
	return ts.login(t, username, "password123")
}

// createEntry creates an entry and returns its ID.
func (ts *testServer) createEntry(t *testing.T, token, location, date string) int64 {
	t.Helper()
	resp := ts.api.Post("/api/entries", bearer(token), map[string]any{
		"location": location,
		"date":     date,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "create entry failed: %s", resp.Body.String())

	var body IDResponse
	decode(t, resp.Body.Bytes(), &body)
	return body.ID
}

// createTag creates a tag and returns its ID.
func (ts *testServer) createTag(t *testing.T, token, name string) int64 {
	t.Helper()
	resp := ts.api.Post("/api/tags", bearer(token), map[string]any{"name": name})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, resp.Code, resp.Body.String())

	var body TagRefResponse
	decode(t, resp.Body.Bytes(), &body)
	return body.ID
}

func decode(t *testing.T, data []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v), "body: %s", data)
}

// errorBody decodes an error response.
func errorBody(t *testing.T, data []byte) APIError {
	t.Helper()
	var e APIError
	decode(t, data, &e)
	return e
}

func entryPath(id int64, rest ...any) string {
	p := fmt.Sprintf("/api/entries/%d", id)
	for _, r := range rest {
		p += fmt.Sprintf("/%v", r)
	}
	return p
}
