package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/traveljournal/journal-server/internal/service"
)

func (s *Server) registerPhotoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPhotos",
		Method:      http.MethodGet,
		Path:        "/api/entries/{id}/photos",
		Summary:     "List photos",
		Description: "Returns the photos attached to an entry",
		Tags:        []string{"Photos"},
		Security:    bearerAuth,
	}, s.handleListPhotos)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createPhoto",
		Method:        http.MethodPost,
		Path:          "/api/entries/{id}/photos",
		Summary:       "Add photo",
		Description:   "Attaches a photo URL to an entry the caller owns",
		Tags:          []string{"Photos"},
		Security:      bearerAuth,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePhoto)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPhoto",
		Method:      http.MethodGet,
		Path:        "/api/entries/{id}/photos/{photo_id}",
		Summary:     "Get photo",
		Description: "Returns one photo of an entry",
		Tags:        []string{"Photos"},
		Security:    bearerAuth,
	}, s.handleGetPhoto)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePhoto",
		Method:      http.MethodDelete,
		Path:        "/api/entries/{id}/photos/{photo_id}",
		Summary:     "Delete photo",
		Description: "Removes a photo from an entry the caller owns",
		Tags:        []string{"Photos"},
		Security:    bearerAuth,
	}, s.handleDeletePhoto)
}

// === DTOs ===

// PhotoResponse is the list view of a photo.
type PhotoResponse struct {
	ID  int64  `json:"id" doc:"Photo ID"`
	URL string `json:"url" doc:"Photo URL"`
}

// PhotoDetailResponse adds the upload time.
type PhotoDetailResponse struct {
	ID         int64     `json:"id" doc:"Photo ID"`
	URL        string    `json:"url" doc:"Photo URL"`
	UploadedAt time.Time `json:"uploaded_at" doc:"Upload time"`
}

// ListPhotosOutput wraps the photo list for Huma.
type ListPhotosOutput struct {
	Body []PhotoResponse
}

// PhotoOutput wraps a created photo for Huma.
type PhotoOutput struct {
	Body PhotoResponse
}

// PhotoDetailOutput wraps a single photo for Huma.
type PhotoDetailOutput struct {
	Body PhotoDetailResponse
}

// CreatePhotoRequest is the request body for a new photo.
type CreatePhotoRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	URL string `json:"url,omitempty" doc:"Photo URL"`
}

// CreatePhotoInput wraps the create request for Huma.
type CreatePhotoInput struct {
	ID   int64 `path:"id" doc:"Entry ID"`
	Body CreatePhotoRequest
}

// PhotoIDInput identifies a photo under an entry.
type PhotoIDInput struct {
	EntryID int64 `path:"id" doc:"Entry ID"`
	PhotoID int64 `path:"photo_id" doc:"Photo ID"`
}

// === Handlers ===

func (s *Server) handleListPhotos(ctx context.Context, input *EntryIDInput) (*ListPhotosOutput, error) {
	if _, err := RequirePrincipal(ctx); err != nil {
		return nil, err
	}

	photos, err := s.services.Photo.List(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		resp = append(resp, PhotoResponse{ID: p.ID, URL: p.URL})
	}
	return &ListPhotosOutput{Body: resp}, nil
}

func (s *Server) handleCreatePhoto(ctx context.Context, input *CreatePhotoInput) (*PhotoOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	photo, err := s.services.Photo.Create(ctx, p, input.ID, service.CreatePhotoRequest{URL: input.Body.URL})
	if err != nil {
		return nil, err
	}

	return &PhotoOutput{Body: PhotoResponse{ID: photo.ID, URL: photo.URL}}, nil
}

func (s *Server) handleGetPhoto(ctx context.Context, input *PhotoIDInput) (*PhotoDetailOutput, error) {
	if _, err := RequirePrincipal(ctx); err != nil {
		return nil, err
	}

	photo, err := s.services.Photo.Get(ctx, input.EntryID, input.PhotoID)
	if err != nil {
		return nil, err
	}

	return &PhotoDetailOutput{Body: PhotoDetailResponse{
		ID:         photo.ID,
		URL:        photo.URL,
		UploadedAt: photo.UploadedAt,
	}}, nil
}

func (s *Server) handleDeletePhoto(ctx context.Context, input *PhotoIDInput) (*MessageOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Photo.Delete(ctx, p, input.EntryID, input.PhotoID); err != nil {
		return nil, err
	}

	return message("Photo deleted successfully"), nil
}
