package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/validation"
)

// PhotoService manages photos attached to entries.
type PhotoService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger

	// exposeErrors echoes storage failure text in upload errors.
	exposeErrors bool
}

// NewPhotoService creates a new photo service. When exposeErrors is set,
// upload failures include the underlying error text.
func NewPhotoService(store store.Store, validator *validation.Validator, logger *slog.Logger, exposeErrors bool) *PhotoService {
	return &PhotoService{
		store:        store,
		validator:    validator,
		logger:       orDefault(logger),
		exposeErrors: exposeErrors,
	}
}

// CreatePhotoRequest contains the URL of a new photo.
type CreatePhotoRequest struct {
	URL string `json:"url" validate:"notblank,max=200"`
}

func (s *PhotoService) entry(ctx context.Context, entryID int64) (*domain.Entry, error) {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, translate(err, MsgEntryNotFound)
	}
	return entry, nil
}

// List returns the photos of an entry.
func (s *PhotoService) List(ctx context.Context, entryID int64) ([]*domain.Photo, error) {
	if _, err := s.entry(ctx, entryID); err != nil {
		return nil, err
	}

	photos, err := s.store.ListPhotos(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

// Get returns one photo of an entry.
func (s *PhotoService) Get(ctx context.Context, entryID, photoID int64) (*domain.Photo, error) {
	if _, err := s.entry(ctx, entryID); err != nil {
		return nil, err
	}

	photo, err := s.store.GetPhoto(ctx, entryID, photoID)
	if err != nil {
		return nil, translate(err, MsgPhotoNotFound)
	}
	return photo, nil
}

// Create attaches a photo to an entry the caller owns. Storage failures
// are rolled back and reported as internal errors.
func (s *PhotoService) Create(ctx context.Context, p auth.Principal, entryID int64, req CreatePhotoRequest) (*domain.Photo, error) {
	entry, err := s.entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		if domainerrors.Is(err, domainerrors.ErrValidation) && req.URL == "" {
			return nil, domainerrors.Validation(MsgPhotoURLRequired)
		}
		return nil, err
	}
	if err := requireOwner(p, entry, s.logger); err != nil {
		return nil, err
	}

	photo := &domain.Photo{URL: req.URL, EntryID: entryID}
	if err := s.store.CreatePhoto(ctx, photo); err != nil {
		s.logger.Error("Photo upload failed",
			"entry_id", entryID,
			"error", err,
		)
		msg := MsgPhotoUploadFailed
		if s.exposeErrors {
			msg = fmt.Sprintf("%s: %v", MsgPhotoUploadFailed, err)
		}
		return nil, domainerrors.Internal(msg).WithCause(err)
	}

	s.logger.Info("Photo added",
		"photo_id", photo.ID,
		"entry_id", entryID,
	)
	return photo, nil
}

// Delete removes a photo from an entry the caller owns.
func (s *PhotoService) Delete(ctx context.Context, p auth.Principal, entryID, photoID int64) error {
	entry, err := s.entry(ctx, entryID)
	if err != nil {
		return err
	}
	if err := requireOwner(p, entry, s.logger); err != nil {
		return err
	}

	if err := s.store.DeletePhoto(ctx, entryID, photoID); err != nil {
		return translate(err, MsgPhotoNotFound)
	}

	s.logger.Info("Photo deleted",
		"photo_id", photoID,
		"entry_id", entryID,
	)
	return nil
}
