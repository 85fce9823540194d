// Package service holds the journal's business rules. Services validate
// input, enforce entry ownership, and translate store errors into coded
// domain errors for the API layer.
package service

import (
	"errors"
	"log/slog"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/store"
)

// User-facing messages.
const (
	MsgUserNotFound       = "User not found"
	MsgEntryNotFound      = "Entry not found"
	MsgPhotoNotFound      = "Photo not found"
	MsgTagNotFound        = "Tag not found"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidDate        = "Invalid date format. Use 'YYYY-MM-DD'."
	MsgInvalidUpdateDate  = "Invalid date format. Use 'YYYY-MM-DD' or 'YYYY-MM-DD HH:MM:SS'."
	MsgPhotoURLRequired   = "Photo URL is required."
	MsgPhotoUploadFailed  = "Failed to upload photo"
	MsgNotEntryOwner      = "You do not have permission to modify this entry"
	MsgUsernameTaken      = "Username or email already exists"
	MsgTagNameTaken       = "Tag name already exists"
)

// translate maps store sentinels onto domain errors. notFound is the
// message for a missing row; other errors pass through untouched.
func translate(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(notFound).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		var storeErr *store.Error
		msg := "already exists"
		if errors.As(err, &storeErr) {
			msg = storeErr.Message
		}
		return domainerrors.AlreadyExists(msg).WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation("invalid reference").WithCause(err)
	}
	return err
}

// requireOwner rejects callers that do not own the entry.
func requireOwner(p auth.Principal, entry *domain.Entry, logger *slog.Logger) error {
	if !p.Authenticated {
		return domainerrors.Unauthorized("authentication required")
	}
	if !entry.OwnedBy(p.UserID) {
		logger.Warn("entry ownership check failed",
			"entry_id", entry.ID,
			"owner_id", entry.UserID,
			"caller_id", p.UserID,
		)
		return domainerrors.Forbidden(MsgNotEntryOwner)
	}
	return nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
