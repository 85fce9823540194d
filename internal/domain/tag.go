package domain

import "time"

// Tag is a named label shared across entries and users.
// Name is unique; there is no ownership model.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
