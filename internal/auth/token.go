// Package auth provides session token issuance and verification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails verification for any
// reason: bad signature, expired, malformed, or missing the email claim.
var ErrInvalidToken = errors.New("invalid session token")

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = time.Hour

// Claims is the decoded identity carried by a session token.
type Claims struct {
	Email    string
	IssuedAt time.Time
}

// Codec issues and verifies signed session tokens.
// Tokens are HS256 JWTs carrying the holder's email and expire after TTL.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec signing with secret. A non-positive ttl
// falls back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured session lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a new session token for email.
func (c *Codec) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the
// decoded claims. All failures map to ErrInvalidToken; callers must not
// learn why a token was rejected.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, ok := mapClaims["email"].(string)
	if !ok || email == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{Email: email}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}

	return claims, nil
}
