package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/traveljournal/journal-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Returns all tags",
		Tags:        []string{"Tags"},
		Security:    bearerAuth,
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/tags",
		Summary:     "Create tag",
		Description: "Creates a tag, or returns the existing tag with the same name (200)",
		Tags:        []string{"Tags"},
		Security:    bearerAuth,
		Responses: map[string]*huma.Response{
			"201": {Description: "Tag created"},
		},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPut,
		Path:        "/api/tags/{id}",
		Summary:     "Rename tag",
		Description: "Renames a tag. Names are unique.",
		Tags:        []string{"Tags"},
		Security:    bearerAuth,
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTag",
		Method:        http.MethodDelete,
		Path:          "/api/tags/{id}",
		Summary:       "Delete tag",
		Description:   "Deletes a tag and detaches it from every entry",
		Tags:          []string{"Tags"},
		Security:      bearerAuth,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEntryTags",
		Method:      http.MethodGet,
		Path:        "/api/entries/{id}/tags",
		Summary:     "List entry tags",
		Description: "Returns the tags attached to an entry",
		Tags:        []string{"Tags"},
		Security:    bearerAuth,
	}, s.handleListEntryTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "addTagToEntry",
		Method:      http.MethodPost,
		Path:        "/api/entries/{id}/tags",
		Summary:     "Add tag to entry",
		Description: "Attaches a tag to an entry the caller owns. Adding twice is a no-op.",
		Tags:        []string{"Tags"},
		Security:    bearerAuth,
	}, s.handleAddTagToEntry)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeTagFromEntry",
		Method:        http.MethodDelete,
		Path:          "/api/entries/{id}/tags/{tag_id}",
		Summary:       "Remove tag from entry",
		Description:   "Detaches a tag from an entry the caller owns. Removing an absent tag succeeds.",
		Tags:          []string{"Tags"},
		Security:      bearerAuth,
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveTagFromEntry)
}

// === DTOs ===

// TagResponse is the public view of a tag.
type TagResponse struct {
	ID        int64     `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Tag name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// TagRefResponse is returned when a tag is created or found by name.
type TagRefResponse struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// ListTagsOutput wraps the tag list for Huma.
type ListTagsOutput struct {
	Body []TagResponse
}

// TagOutput wraps a single tag for Huma.
type TagOutput struct {
	Body TagResponse
}

// TagNameRequest is the request body for creating or renaming a tag.
type TagNameRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Name string `json:"name,omitempty" doc:"Tag name"`
}

// CreateTagInput wraps the create request for Huma.
type CreateTagInput struct {
	Body TagNameRequest
}

// CreateTagOutput reports 201 for a new tag and 200 for an existing one.
type CreateTagOutput struct {
	Status int
	Body   TagRefResponse
}

// TagIDInput identifies a tag by path.
type TagIDInput struct {
	ID int64 `path:"id" doc:"Tag ID"`
}

// UpdateTagInput wraps the rename request for Huma.
type UpdateTagInput struct {
	ID   int64 `path:"id" doc:"Tag ID"`
	Body TagNameRequest
}

// AddEntryTagRequest is the request body for attaching a tag.
type AddEntryTagRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	TagID int64 `json:"tag_id" doc:"Tag ID"`
}

// AddEntryTagInput wraps the attach request for Huma.
type AddEntryTagInput struct {
	ID   int64 `path:"id" doc:"Entry ID"`
	Body AddEntryTagRequest
}

// EntryTagInput identifies an entry-tag association.
type EntryTagInput struct {
	ID    int64 `path:"id" doc:"Entry ID"`
	TagID int64 `path:"tag_id" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	if _, err := RequirePrincipal(ctx); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: mapTags(tags)}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*CreateTagOutput, error) {
	if _, err := RequirePrincipal(ctx); err != nil {
		return nil, err
	}

	tag, created, err := s.services.Tag.CreateTag(ctx, input.Body.Name)
	if err != nil {
		return nil, err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return &CreateTagOutput{
		Status: status,
		Body:   TagRefResponse{ID: tag.ID, Name: tag.Name},
	}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	if _, err := RequirePrincipal(ctx); err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.RenameTag(ctx, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: mapTag(tag)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*struct{}, error) {
	if _, err := RequirePrincipal(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Tag.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleListEntryTags(ctx context.Context, input *EntryIDInput) (*ListTagsOutput, error) {
	if _, err := RequirePrincipal(ctx); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.ListEntryTags(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: mapTags(tags)}, nil
}

func (s *Server) handleAddTagToEntry(ctx context.Context, input *AddEntryTagInput) (*MessageOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.AddTagToEntry(ctx, p, input.ID, input.Body.TagID); err != nil {
		return nil, err
	}
	return message("Tag added successfully"), nil
}

func (s *Server) handleRemoveTagFromEntry(ctx context.Context, input *EntryTagInput) (*struct{}, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.RemoveTagFromEntry(ctx, p, input.ID, input.TagID); err != nil {
		return nil, err
	}
	return nil, nil
}

// === Helpers ===

func mapTag(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func mapTags(tags []*domain.Tag) []TagResponse {
	resp := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, mapTag(t))
	}
	return resp
}
