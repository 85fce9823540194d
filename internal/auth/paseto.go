package auth

import (
	"fmt"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/id"
)

// PasetoIssuer issues PASETO v4.local (encrypted) access tokens.
type PasetoIssuer struct {
	symmetricKey paseto.V4SymmetricKey
	ttl          time.Duration
}

var _ Issuer = (*PasetoIssuer)(nil)

// NewPasetoIssuer creates an issuer from a 32-byte symmetric key.
func NewPasetoIssuer(key []byte, ttl time.Duration) (*PasetoIssuer, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}
	return &PasetoIssuer{symmetricKey: symmetricKey, ttl: ttl}, nil
}

// Issue creates an encrypted token whose subject is the user's ID.
func (p *PasetoIssuer) Issue(user *domain.User) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(subjectFor(user.ID))
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.ttl))

	tokenID, err := id.Generate(id.PrefixToken)
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	return token.V4Encrypt(p.symmetricKey, nil), nil
}

// Verify decrypts the token and checks issuer, audience and validity window.
func (p *PasetoIssuer) Verify(tokenString string) (*Claims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(p.symmetricKey, tokenString, nil)
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sub, err := token.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	userID, err := userIDFromSubject(sub)
	if err != nil {
		return nil, err
	}

	claims := &Claims{UserID: userID}
	claims.TokenID, _ = token.GetJti()
	claims.IssuedAt, _ = token.GetIssuedAt()
	claims.ExpiresAt, _ = token.GetExpiration()
	return claims, nil
}

// TTL returns the configured access token lifetime.
func (p *PasetoIssuer) TTL() time.Duration {
	return p.ttl
}
