package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/traveljournal/journal-server/internal/domain"
)

const (
	tokenIssuer   = "journal-server"
	tokenAudience = "journal-client"
)

// Token verification errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Format selects the access token encoding.
type Format string

// Supported token formats.
const (
	FormatJWT    Format = "jwt"
	FormatPaseto Format = "paseto"
)

// ParseFormat parses a TOKEN_FORMAT value. Empty selects JWT.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJWT:
		return FormatJWT, nil
	case FormatPaseto:
		return FormatPaseto, nil
	}
	return "", fmt.Errorf("unknown token format %q (want jwt or paseto)", s)
}

// Issuer creates and verifies stateless bearer tokens.
type Issuer interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*Claims, error)
	TTL() time.Duration
}

func subjectFor(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func userIDFromSubject(sub string) (int64, error) {
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return userID, nil
}
