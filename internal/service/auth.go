package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/domain"
	domainerrors "github.com/traveljournal/journal-server/internal/errors"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/validation"
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	store     store.Store
	issuer    auth.Issuer
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, issuer auth.Issuer, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     store,
		issuer:    issuer,
		validator: validator,
		logger:    orDefault(logger),
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Username string `json:"username" validate:"notblank,max=50"`
	Email    string `json:"email" validate:"notblank,max=120"`
	Password string `json:"password" validate:"notblank,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// Register creates a new user with an argon2id password hash.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists(MsgUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		"user_id", user.ID,
		"username", user.Username,
	)
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown users and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.BurnVerify(req.Password)
			return "", domainerrors.InvalidCredentials(MsgInvalidCredentials)
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		s.logger.Info("Login failed", "username", req.Username)
		return "", domainerrors.InvalidCredentials(MsgInvalidCredentials)
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return token, nil
}

// TokenTTL is the lifetime of issued access tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.issuer.TTL()
}

// RequestPasswordReset acknowledges a reset request. No email is sent and
// the response does not reveal whether the address is registered.
func (s *AuthService) RequestPasswordReset(_ context.Context, email string) {
	s.logger.Info("Password reset requested", "email_provided", email != "")
}

// Authenticate verifies a bearer token and returns the caller's principal.
func (s *AuthService) Authenticate(token string) (auth.Principal, error) {
	if token == "" {
		return auth.Anonymous(), domainerrors.Unauthorized("missing token")
	}

	claims, err := s.issuer.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return auth.Anonymous(), domainerrors.TokenExpired("token has expired")
		}
		return auth.Anonymous(), domainerrors.Unauthorized("invalid token")
	}
	return auth.Authenticated(claims.UserID), nil
}
