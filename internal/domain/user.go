package domain

import "time"

// User represents a registered journal author.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // argon2id encoded, never serialized
	CreatedAt    time.Time `json:"created_at"`
}

// Joined returns the registration time in the journal's display format.
func (u *User) Joined() string {
	return FormatDateTime(u.CreatedAt)
}
