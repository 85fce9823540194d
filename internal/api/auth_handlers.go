package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/traveljournal/journal-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/users/register",
		Summary:       "Register new user",
		Description:   "Creates a user account. Username and email must be unique.",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   s.authLimits(),
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/users/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns an access token",
		Tags:        []string{"Authentication"},
		Middlewares: s.authLimits(),
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetPassword",
		Method:      http.MethodPost,
		Path:        "/api/users/reset-password",
		Summary:     "Request password reset",
		Description: "Acknowledges a password reset request. No email is sent.",
		Tags:        []string{"Authentication"},
	}, s.handleResetPassword)
}

// === DTOs ===

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Username     string `json:"username,omitempty" doc:"Unique username"`
	Email        string `json:"email,omitempty" doc:"Unique email address"`
	Password     string `json:"password,omitempty" doc:"Plaintext password"`
	PasswordHash string `json:"password_hash,omitempty" doc:"Legacy name for password; used when password is absent"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Username string `json:"username,omitempty" doc:"Username"`
	Password string `json:"password,omitempty" doc:"Password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token" doc:"Bearer access token"`
	ExpiresIn   int64  `json:"expires_in" doc:"Token lifetime in seconds"`
}

// LoginOutput wraps the login response for Huma.
type LoginOutput struct {
	Body LoginResponse
}

// ResetPasswordRequest is the request body for a password reset.
type ResetPasswordRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Email string `json:"email,omitempty" doc:"Account email"`
}

// ResetPasswordInput wraps the reset request for Huma.
type ResetPasswordInput struct {
	Body *ResetPasswordRequest
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func message(msg string) *MessageOutput {
	return &MessageOutput{Body: MessageResponse{Message: msg}}
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*MessageOutput, error) {
	password := input.Body.Password
	if password == "" {
		password = input.Body.PasswordHash
	}

	_, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username: input.Body.Username,
		Email:    input.Body.Email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	return message("User registered successfully"), nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	token, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Body: LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.services.Auth.TokenTTL().Seconds()),
	}}, nil
}

func (s *Server) handleResetPassword(ctx context.Context, input *ResetPasswordInput) (*MessageOutput, error) {
	var email string
	if input.Body != nil {
		email = input.Body.Email
	}
	s.services.Auth.RequestPasswordReset(ctx, email)

	return message("Password reset request received"), nil
}
