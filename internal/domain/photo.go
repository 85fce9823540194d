package domain

import "time"

// Photo is an image reference attached to exactly one entry.
// Photos are removed together with their entry.
type Photo struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	EntryID    int64     `json:"entry_id"`
	UploadedAt time.Time `json:"uploaded_at"`
}
