package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/service"
)

func (s *Server) registerEntryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEntries",
		Method:      http.MethodGet,
		Path:        "/api/entries",
		Summary:     "List entries",
		Description: "Returns every journal entry. Authentication is optional.",
		Tags:        []string{"Entries"},
	}, s.handleListEntries)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createEntry",
		Method:        http.MethodPost,
		Path:          "/api/entries",
		Summary:       "Create entry",
		Description:   "Creates an entry owned by the caller. Date must be YYYY-MM-DD.",
		Tags:          []string{"Entries"},
		Security:      bearerAuth,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEntry",
		Method:      http.MethodGet,
		Path:        "/api/entries/{id}",
		Summary:     "Get entry",
		Description: "Returns a single entry. Authentication is optional.",
		Tags:        []string{"Entries"},
	}, s.handleGetEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateEntry",
		Method:      http.MethodPut,
		Path:        "/api/entries/{id}",
		Summary:     "Update entry",
		Description: "Updates the provided fields of an entry the caller owns",
		Tags:        []string{"Entries"},
		Security:    bearerAuth,
	}, s.handleUpdateEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEntry",
		Method:      http.MethodDelete,
		Path:        "/api/entries/{id}",
		Summary:     "Delete entry",
		Description: "Deletes an entry the caller owns with its photos and tag associations",
		Tags:        []string{"Entries"},
		Security:    bearerAuth,
	}, s.handleDeleteEntry)
}

// === DTOs ===

// EntryResponse is the public view of an entry.
type EntryResponse struct {
	ID          int64   `json:"id" doc:"Entry ID"`
	Location    string  `json:"location" doc:"Location"`
	Date        string  `json:"date" doc:"Date, YYYY-MM-DD HH:MM:SS"`
	Description *string `json:"description" doc:"Description, null when absent"`
	UserID      int64   `json:"user_id" doc:"Owner user ID"`
}

// EntryIDInput identifies an entry by path.
type EntryIDInput struct {
	ID int64 `path:"id" doc:"Entry ID"`
}

// EntryOutput wraps an entry for Huma.
type EntryOutput struct {
	Body EntryResponse
}

// ListEntriesOutput wraps the entry list for Huma.
type ListEntriesOutput struct {
	Body []EntryResponse
}

// CreateEntryRequest is the request body for a new entry.
type CreateEntryRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Location    string `json:"location,omitempty" doc:"Location"`
	Date        string `json:"date,omitempty" doc:"Date, YYYY-MM-DD"`
	Description string `json:"description,omitempty" doc:"Description"`
}

// CreateEntryInput wraps the create request for Huma.
type CreateEntryInput struct {
	Body CreateEntryRequest
}

// IDResponse carries the ID of a created resource.
type IDResponse struct {
	ID int64 `json:"id" doc:"Created ID"`
}

// IDOutput wraps an ID response for Huma.
type IDOutput struct {
	Body IDResponse
}

// UpdateEntryRequest is the request body for an entry update.
type UpdateEntryRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Location    *string `json:"location,omitempty" doc:"Location"`
	Date        *string `json:"date,omitempty" doc:"Date, YYYY-MM-DD HH:MM:SS or YYYY-MM-DD"`
	Description *string `json:"description,omitempty" doc:"Description"`
}

// UpdateEntryInput wraps the update request for Huma.
type UpdateEntryInput struct {
	ID   int64 `path:"id" doc:"Entry ID"`
	Body UpdateEntryRequest
}

// === Handlers ===

func (s *Server) handleListEntries(ctx context.Context, _ *struct{}) (*ListEntriesOutput, error) {
	entries, err := s.services.Entry.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, mapEntry(e))
	}
	return &ListEntriesOutput{Body: resp}, nil
}

func (s *Server) handleCreateEntry(ctx context.Context, input *CreateEntryInput) (*IDOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.Entry.Create(ctx, p, service.CreateEntryRequest{
		Location:    input.Body.Location,
		Date:        input.Body.Date,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, err
	}

	return &IDOutput{Body: IDResponse{ID: entry.ID}}, nil
}

func (s *Server) handleGetEntry(ctx context.Context, input *EntryIDInput) (*EntryOutput, error) {
	entry, err := s.services.Entry.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &EntryOutput{Body: mapEntry(entry)}, nil
}

func (s *Server) handleUpdateEntry(ctx context.Context, input *UpdateEntryInput) (*MessageOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	_, err = s.services.Entry.Update(ctx, p, input.ID, service.UpdateEntryRequest{
		Location:    input.Body.Location,
		Date:        input.Body.Date,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, err
	}

	return message("Entry updated successfully"), nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, input *EntryIDInput) (*MessageOutput, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Entry.Delete(ctx, p, input.ID); err != nil {
		return nil, err
	}

	return message("Entry deleted successfully"), nil
}

// === Helpers ===

func mapEntry(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		ID:       e.ID,
		Location: e.Location,
		Date:     domain.FormatDateTime(e.Date),
		UserID:   e.UserID,
	}
	if e.Description != "" {
		desc := e.Description
		resp.Description = &desc
	}
	return resp
}
