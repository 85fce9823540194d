package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/logger"
	"github.com/traveljournal/journal-server/internal/search"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/store/sqlstore"
	"github.com/traveljournal/journal-server/internal/validation"
)

const testJWTSecret = "service-test-secret-value"

type testEnv struct {
	store   store.Store
	issuer  auth.Issuer
	auth    *AuthService
	users   *UserService
	entries *EntryService
	photos  *PhotoService
	tags    *TagService
	search  *SearchService
}

// setupTest wires every service against a fresh SQLite database.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	log := logger.Discard().Logger
	s, err := sqlstore.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	issuer, err := auth.NewJWTIssuer(testJWTSecret, 15*time.Minute)
	require.NoError(t, err)

	index, _, err := search.NewSearchIndex(search.Options{Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	v := validation.New()
	env := &testEnv{
		store:   s,
		issuer:  issuer,
		auth:    NewAuthService(s, issuer, v, log),
		users:   NewUserService(s, v, log),
		entries: NewEntryService(s, v, log),
		photos:  NewPhotoService(s, v, log, true),
		tags:    NewTagService(s, v, log),
		search:  NewSearchService(index, s, v, log),
	}
	env.entries.SetIndexer(env.search)
	env.tags.SetIndexer(env.search)
	return env
}

// registerUser creates a user and returns its principal.
func (e *testEnv) registerUser(t *testing.T, username string) auth.Principal {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return auth.Authenticated(user.ID)
}

func (e *testEnv) createEntry(t *testing.T, p auth.Principal, location string) *domain.Entry {
	t.Helper()
	entry, err := e.entries.Create(context.Background(), p, CreateEntryRequest{
		Location: location,
		Date:     "2024-10-15",
	})
	require.NoError(t, err)
	return entry
}

// messageOf returns the user-facing message of a domain error.
func messageOf(t *testing.T, err error) string {
	t.Helper()
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	return domainErr.Message
}
