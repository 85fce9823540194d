package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/traveljournal/journal-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/users/profile",
		Summary:     "Get profile",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    bearerAuth,
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPut,
		Path:        "/api/users/profile",
		Summary:     "Update profile",
		Description: "Updates the authenticated user's username",
		Tags:        []string{"Users"},
		Security:    bearerAuth,
	}, s.handleUpdateProfile)
}

// ProfileResponse is the public view of a user. The password hash is
// never part of it.
type ProfileResponse struct {
	ID       int64  `json:"id" doc:"User ID"`
	Username string `json:"username" doc:"Username"`
	Email    string `json:"email" doc:"Email address"`
	Joined   string `json:"joined" doc:"Registration time, YYYY-MM-DD HH:MM:SS"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// UpdateProfileRequest is the request body for a profile update.
type UpdateProfileRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Username *string `json:"username,omitempty" doc:"New username"`
}

// UpdateProfileInput wraps the profile update for Huma.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.GetProfile(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: ProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Joined:   user.Joined(),
	}}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*MessageOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	_, err = s.services.User.UpdateProfile(ctx, p.UserID, service.UpdateProfileRequest{
		Username: input.Body.Username,
	})
	if err != nil {
		return nil, err
	}

	return message("User profile updated successfully"), nil
}
