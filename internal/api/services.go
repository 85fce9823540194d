package api

import (
	"github.com/traveljournal/journal-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Auth  *service.AuthService
	User  *service.UserService
	Entry *service.EntryService
	Photo *service.PhotoService
	Tag   *service.TagService

	// Search is optional; entry search routes are skipped when nil.
	Search *service.SearchService
}
