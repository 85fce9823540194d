package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/validation"
)

// UserService manages the authenticated user's profile.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     store,
		validator: validator,
		logger:    orDefault(logger),
	}
}

// UpdateProfileRequest contains optional profile changes.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitnil,notblank,max=50"`
}

// GetProfile returns the user with the given ID.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, MsgUserNotFound)
	}
	return user, nil
}

// UpdateProfile applies the provided fields to the user.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, MsgUserNotFound)
	}

	if req.Username == nil || *req.Username == user.Username {
		return user, nil
	}

	user.Username = *req.Username
	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists(MsgUsernameTaken)
		}
		return nil, translate(err, MsgUserNotFound)
	}

	s.logger.Info("Profile updated", "user_id", user.ID)
	return user, nil
}
