package auth

import (
	"time"
)

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    int64
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal is the caller identity attached to a request. The zero value
// is the anonymous principal.
type Principal struct {
	Authenticated bool
	UserID        int64
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal {
	return Principal{}
}

// Authenticated returns a principal for the given user.
func Authenticated(userID int64) Principal {
	return Principal{Authenticated: true, UserID: userID}
}
