// Package search provides full-text search over journal entries using Bleve.
// Entries are denormalized with their tag slugs so one query can match text
// and filter by tag.
package search

import (
	"strconv"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/util"
)

// EntryDocument is the indexed form of an entry.
type EntryDocument struct {
	ID          string   `json:"id"` // decimal entry ID, the Bleve document ID
	EntryID     int64    `json:"entry_id"`
	UserID      int64    `json:"user_id"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"` // tag slugs

	// Unix millis for sorting
	Date      int64 `json:"date"`
	CreatedAt int64 `json:"created_at"`
}

// ToMap converts the document to a map with the field names used by the mapping.
func (d *EntryDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"entry_id":   float64(d.EntryID),
		"user_id":    float64(d.UserID),
		"location":   d.Location,
		"date":       float64(d.Date),
		"created_at": float64(d.CreatedAt),
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	return m
}

// DocumentID returns the index document ID for an entry.
func DocumentID(entryID int64) string {
	return strconv.FormatInt(entryID, 10)
}

// EntryToDocument builds the index document for an entry and its tags.
func EntryToDocument(e *domain.Entry, tags []*domain.Tag) *EntryDocument {
	doc := &EntryDocument{
		ID:          DocumentID(e.ID),
		EntryID:     e.ID,
		UserID:      e.UserID,
		Location:    e.Location,
		Description: e.Description,
		Date:        e.Date.UnixMilli(),
		CreatedAt:   e.CreatedAt.UnixMilli(),
	}
	for _, t := range tags {
		if slug := util.Slugify(t.Name); slug != "" {
			doc.Tags = append(doc.Tags, slug)
		}
	}
	return doc
}
