package domain

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the only format accepted when creating an entry.
	DateLayout = "2006-01-02"
	// DateTimeLayout is how entry dates and join dates are rendered,
	// and the first format tried when updating an entry.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Entry is a single journal record owned by one user.
type Entry struct {
	ID          int64     `json:"id"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnedBy reports whether the entry belongs to the given user.
func (e *Entry) OwnedBy(userID int64) bool {
	return e.UserID == userID
}

// ParseEntryDate parses a creation date, which must be YYYY-MM-DD.
func ParseEntryDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse entry date %q: %w", s, err)
	}
	return t, nil
}

// ParseEntryDateTime parses an update date. It tries YYYY-MM-DD HH:MM:SS
// first and falls back to YYYY-MM-DD.
func ParseEntryDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return t, nil
	}
	return ParseEntryDate(s)
}

// FormatDateTime renders t as YYYY-MM-DD HH:MM:SS in UTC.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}
